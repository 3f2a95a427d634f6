// Package ideas generates title and thumbnail suggestions from a channel's
// own keyword profile. Generation is a deterministic rotation over fixed
// templates so the same channel state always produces the same list.
package ideas

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxTitleLen  = 60
	maxSpins     = 100
	maxSeedCount = 12
)

var titleTemplates = []string{
	"How I Made £{num} With {seed}",
	"{seed}: 7 Simple Steps",
	"From 0 to 1,000 Subs Using {seed}",
	"Do This Before Starting {seed}",
	"Stop Doing This With {seed}",
	"The Truth About {seed}",
	"3 Mistakes Killing Your {seed}",
	"{seed} vs {alt}: What Works Now",
	"The Ultimate {seed} Guide",
	"{seed} For Beginners: Complete Setup",
	"Scale Faster With {seed}",
	"I Tried {seed} For 30 Days",
	"Avoid These {seed} Traps",
	"£0 To £1,000 With {seed}",
	"My Exact {seed} Workflow",
}

var (
	altTopics = []string{"SEO", "Ads", "Automation", "Funnels", "Content", "Emails"}
	numbers   = []string{"100", "500", "1,000", "10,000"}

	defaultSeeds = []string{"automation", "content", "offers", "ads"}

	// Generic words that make a weak title seed on their own.
	seedStopwords = map[string]struct{}{
		"make": {}, "made": {}, "doing": {}, "do": {}, "this": {}, "that": {},
		"thing": {}, "stuff": {}, "way": {}, "ways": {}, "day": {}, "best": {},
	}

	seedCleanPattern = regexp.MustCompile(`[^A-Za-z0-9 ']+`)
	stutterPattern   = regexp.MustCompile(`(?i)\b(Make|Made)\s+Made\b`)
	hintWordPattern  = regexp.MustCompile(`[A-Za-z']{3,}`)

	titleCaser = cases.Title(language.English)
)

// VideoTitles produces n unique title suggestions from the channel's top
// title keywords. Seeds beyond the first twelve are ignored; an empty seed
// list falls back to generic business topics.
func VideoTitles(seeds []string, n int) []string {
	if n <= 0 {
		return nil
	}

	if len(seeds) == 0 {
		seeds = defaultSeeds
	}

	if len(seeds) > maxSeedCount {
		seeds = seeds[:maxSeedCount]
	}

	titles := make([]string, 0, n)
	used := make(map[string]struct{}, n)

	for spin := 1; len(titles) < n && spin <= maxSpins; spin++ {
		idx := len(titles) + spin
		seed := cleanSeed(seeds[idx%len(seeds)])
		tmpl := titleTemplates[idx%len(titleTemplates)]

		title := strings.NewReplacer(
			"{seed}", seed,
			"{alt}", altTopics[idx%len(altTopics)],
			"{num}", numbers[idx%len(numbers)],
		).Replace(tmpl)

		// A seed like "Made Money" colliding with a "Made ..." template
		// reads badly, collapse the stutter.
		title = stutterPattern.ReplaceAllString(title, "Made")
		title = capTitle(title)

		if _, ok := used[title]; ok {
			continue
		}

		titles = append(titles, title)
		used[title] = struct{}{}
	}

	return titles
}

// ThumbnailConcepts returns ten thumbnail briefs in the form
// "text | layout | subject | background | accent". The hint's first strong
// word is worked into one of the briefs.
func ThumbnailConcepts(hint string) []string {
	key := "Your Bot"
	if m := hintWordPattern.FindString(strings.ToLower(hint)); m != "" {
		key = titleCaser.String(m)
	}

	return []string{
		"Make £100/Day | Right split | You pointing | Blurred stats | Electric blue",
		"Fix " + key + " Fast | Left bar | You with wrench | Circuit board | Neon green",
		"Bot vs Human | Half split | You vs robot arm | Studio grey | Red/blue clash",
		"This Broke My Sales | Top/bottom | Shock face + down arrow | Sales chart | Red accent",
		"Do This, Not That | Two panels | Tick & cross | Clean gradient | Lime vs red",
		"24h Challenge | Center portrait | Stopwatch | City night | Orange glow",
		"3 Hidden Tricks | Left text | Hand with 3 fingers | Soft blur | Sky blue",
		"I Copied a Millionaire | Right text | Notebook pose | Office bokeh | Gold accent",
		"From 0 to 1k Subs | Diagonal split | Growth arrow | Graph BG | Bright teal",
		"Truth About AI | Center big text | You + robot eye | Dark vignette | Cyan accent",
	}
}

func cleanSeed(raw string) string {
	t := strings.ToLower(strings.TrimSpace(seedCleanPattern.ReplaceAllString(raw, " ")))

	words := make([]string, 0, 4)

	for _, w := range strings.Fields(t) {
		if _, stop := seedStopwords[w]; !stop {
			words = append(words, w)
		}
	}

	if len(words) == 0 {
		return "Strategy"
	}

	return titleCaser.String(strings.Join(words, " "))
}

func capTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= maxTitleLen {
		return s
	}

	return strings.TrimRight(string(runes[:maxTitleLen-3]), " ") + "..."
}
