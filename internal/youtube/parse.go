package youtube

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ExtractVideoID pulls the video ID out of a watch URL, a youtu.be short
// link, or a bare ID. Returns "" when nothing usable is found.
func ExtractVideoID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if !strings.Contains(s, "youtube.com") && !strings.Contains(s, "youtu.be") {
		return s
	}

	u, err := url.Parse(s)
	if err != nil {
		return ""
	}

	if strings.HasSuffix(u.Host, "youtu.be") {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")

		return parts[0]
	}

	if strings.HasPrefix(u.Path, "/watch") {
		return strings.TrimSpace(u.Query().Get("v"))
	}

	// Covers /shorts/<id> and /embed/<id> paths.
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	return parts[len(parts)-1]
}

// ParseISODuration converts an ISO-8601 video duration such as "PT12M34S"
// into whole seconds. Malformed input parses to 0.
func ParseISODuration(d string) int {
	m := durationPattern.FindStringSubmatch(d)
	if m == nil {
		return 0
	}

	total := 0

	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		total += h * 3600
	}

	if m[2] != "" {
		min, _ := strconv.Atoi(m[2])
		total += min * 60
	}

	if m[3] != "" {
		s, _ := strconv.Atoi(m[3])
		total += s
	}

	return total
}

// channelRef classifies a channel input string ahead of API resolution.
type channelRef struct {
	ID     string // set when the input is already a UC... ID or a /channel/ URL
	Handle string // set when the input is an @handle or /@handle URL
	Query  string // free-text fallback for search
}

func parseChannelInput(s string) channelRef {
	t := strings.TrimSpace(s)

	if strings.HasPrefix(t, "UC") && !strings.Contains(t, "/") {
		return channelRef{ID: t}
	}

	if strings.HasPrefix(t, "@") {
		return channelRef{Handle: strings.TrimPrefix(t, "@")}
	}

	if strings.Contains(t, "youtube.com") {
		if u, err := url.Parse(t); err == nil {
			if strings.HasPrefix(u.Path, "/channel/") {
				rest := strings.TrimPrefix(u.Path, "/channel/")

				return channelRef{ID: strings.Split(rest, "/")[0]}
			}

			if strings.HasPrefix(u.Path, "/@") {
				return channelRef{Handle: strings.TrimPrefix(strings.Trim(u.Path, "/"), "@")}
			}
		}
	}

	return channelRef{Query: t}
}
