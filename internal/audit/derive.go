package audit

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"golang.org/x/text/cases"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

const (
	titleLenMin = 45
	titleLenMax = 70

	// minAgeMinutes floors the video age so views-per-minute never divides
	// by a near-zero age for a just-published video.
	minAgeMinutes = 1.0

	dupWordAllowance = 2
	minKeywordLen    = 3
)

// wordPattern matches the raw lowercase tokens used for the duplicate-word
// penalty. Diagnostics intentionally apply no stopword filtering; only the
// channel-wide keyword aggregator filters stopwords.
var wordPattern = regexp.MustCompile(`[a-z']{3,}`)

var keywordStopwords = buildStopwords("the a an and or for with your this that what why how into from to of on in out are was were been being you my our their his her more most very")

func buildStopwords(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}

	return set
}

// ParsePublished parses a publish timestamp from the fetch collaborator.
// Malformed values return nil and are dropped from time-series computations.
func ParsePublished(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}

	utc := t.UTC()

	return &utc
}

// Derive computes the per-video metric annotations. now is injected so view
// velocity is reproducible in tests; it is the only clock the engine sees.
func Derive(v domain.VideoRecord, now time.Time) domain.DerivedMetrics {
	m := domain.DerivedMetrics{}

	if v.Views > 0 {
		if v.Likes != nil {
			r := round2(float64(*v.Likes) / float64(v.Views) * 100)
			m.LikeRate = &r
		}

		if v.Comments != nil {
			r := round2(float64(*v.Comments) / float64(v.Views) * 100)
			m.CommentRate = &r
		}
	}

	if v.PublishedAt != nil {
		age := now.Sub(*v.PublishedAt).Minutes()
		if age < minAgeMinutes {
			age = minAgeMinutes
		}

		vpm := round2(float64(v.Views) / age)
		m.AgeMinutes = &age
		m.ViewsPerMin = &vpm
	}

	m.TitleLen = utf8.RuneCountInString(v.Title)
	m.TitleLenOK = m.TitleLen >= titleLenMin && m.TitleLen <= titleLenMax
	m.DupWordPenalty = dupWordPenalty(v.Title)

	return m
}

// dupWordPenalty is the count by which the most frequent raw title token
// exceeds two occurrences.
func dupWordPenalty(title string) int {
	words := wordPattern.FindAllString(strings.ToLower(title), -1)
	if len(words) == 0 {
		return 0
	}

	counts := make(map[string]int, len(words))
	peak := 0

	for _, w := range words {
		counts[w]++
		if counts[w] > peak {
			peak = counts[w]
		}
	}

	if peak <= dupWordAllowance {
		return 0
	}

	return peak - dupWordAllowance
}

// KeywordCount is one aggregated title keyword with its frequency.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// KeywordDensity aggregates keyword frequencies across titles, case-folded
// and stopword-filtered, sorted by count descending then alphabetically so
// identical input always yields identical output.
func KeywordDensity(titles []string) []KeywordCount {
	caser := cases.Fold()
	counts := make(map[string]int)

	for _, t := range titles {
		for _, w := range wordPattern.FindAllString(caser.String(t), -1) {
			if _, stop := keywordStopwords[w]; stop {
				continue
			}

			counts[w]++
		}
	}

	out := make([]KeywordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, KeywordCount{Word: w, Count: c})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Word < out[j].Word
	})

	return out
}
