package audit

import (
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	maxTipsPerVideo = 6

	// thumbnailViewFloor is the absolute views threshold below which a
	// thumbnail test is always suggested, regardless of the batch median.
	thumbnailViewFloor = 1000
	medianViewFraction = 0.8
)

var fallbackTip = "Solid baseline. Split-test title and thumbnail for 24h."

// tipRule pairs one independent predicate with its tip text. Rules are
// evaluated in fixed order so tips come out prioritized and tests stay
// simple; adding a rule never reorders existing output.
type tipRule struct {
	applies func(v Video, medianViews float64) bool
	tip     string
}

var tipRules = []tipRule{
	{
		applies: func(v Video, _ float64) bool { return !hasNumber(v.Title) },
		tip:     "Add one number to the title to anchor the promise.",
	},
	{
		applies: func(v Video, _ float64) bool { return utf8.RuneCountInString(v.Title) < titleLenMin },
		tip:     "Lengthen title to ~55 chars with a clear outcome.",
	},
	{
		applies: func(v Video, _ float64) bool { return utf8.RuneCountInString(v.Title) > titleLenMax },
		tip:     "Trim title to <=70 chars. Remove filler words.",
	},
	{
		applies: func(v Video, _ float64) bool { return !hasPowerWord(v.Title) },
		tip:     "Add one power word (e.g., 'ultimate', 'simple', 'proven').",
	},
	{
		applies: func(v Video, _ float64) bool { return utf8.RuneCountInString(v.Description) < descLenMin },
		tip:     "Extend description to >200 chars with 1-2 links near the top.",
	},
	{
		applies: func(v Video, _ float64) bool { return !hasChapters(v.Description) },
		tip:     "Add chapters (timestamps) for navigation.",
	},
	{
		applies: func(v Video, _ float64) bool { return !hasLink(v.Description) },
		tip:     "Include one clear CTA link in the first 3 lines.",
	},
	{
		applies: func(v Video, _ float64) bool { return int64OrZero(v.Comments) == 0 },
		tip:     "Pin a question and reply to the first 5 comments.",
	},
	{
		applies: func(v Video, medianViews float64) bool {
			threshold := medianViews * medianViewFraction
			if threshold < thumbnailViewFloor {
				threshold = thumbnailViewFloor
			}

			return float64(v.Views) < threshold
		},
		tip: "Test a stronger thumbnail: big face + 2-4 words + strong contrast.",
	},
}

// ImprovementsForVideo maps a video's metric profile to a deduplicated,
// order-preserving tip list capped at six entries. A video that trips no
// rule still gets the fallback tip so every report row has something to say.
func ImprovementsForVideo(v Video, medianViews float64) []string {
	seen := make(map[string]struct{}, maxTipsPerVideo)
	out := make([]string, 0, maxTipsPerVideo)

	for _, rule := range tipRules {
		if !rule.applies(v, medianViews) {
			continue
		}

		if _, dup := seen[rule.tip]; dup {
			continue
		}

		seen[rule.tip] = struct{}{}
		out = append(out, rule.tip)

		if len(out) == maxTipsPerVideo {
			break
		}
	}

	if len(out) == 0 {
		return []string{fallbackTip}
	}

	return out
}

var numPrinter = message.NewPrinter(language.English)

// ChannelSummary is the fixed five-line improvement summary, parameterized
// only by the batch's median view count.
func ChannelSummary(videos []Video) []string {
	views := make([]float64, 0, len(videos))
	for _, v := range videos {
		views = append(views, float64(v.Views))
	}

	med := int64(median(views))

	return []string{
		numPrinter.Sprintf("Median views across audited videos: %d.", med),
		"Keep a steady cadence. Aim for consistent upload gaps.",
		"Use a power word + number in titles. Avoid repeating the same word >2 times.",
		"Ensure descriptions include chapters and >200 chars.",
		"Refresh low performers with new title/thumbnail within 24h.",
	}
}

// QuickWins is the static best-practice checklist. Intentionally
// data-independent: these apply to every channel.
func QuickWins() []string {
	return []string{
		"Add chapters. Viewers jump to value fast.",
		"Front-load a number and outcome in the first 10 words of the title.",
		"Include 1-2 high-position links with a clear CTA.",
		"Pin a comment and reply to early comments within 1 hour.",
		"Batch-create 3 thumbnail variants and A/B test the strongest hook.",
	}
}
