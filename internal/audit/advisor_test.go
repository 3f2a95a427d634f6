package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

func TestImprovementsForWeakVideo(t *testing.T) {
	v := Video{
		VideoRecord: domain.VideoRecord{
			Title:       "my simple adventure in the mountains", // 36 chars, has power word
			Description: "a short description without much in it",
			Views:       50,
			Comments:    int64p(0),
		},
	}

	tips := ImprovementsForVideo(v, 100000)

	want := []string{
		"Add one number to the title to anchor the promise.",
		"Lengthen title to ~55 chars with a clear outcome.",
		"Extend description to >200 chars with 1-2 links near the top.",
		"Add chapters (timestamps) for navigation.",
		"Include one clear CTA link in the first 3 lines.",
		"Pin a question and reply to the first 5 comments.",
	}

	assert.Equal(t, want, tips, "rules fire in fixed order, truncated at six")
}

func TestImprovementsCapAndOrder(t *testing.T) {
	v := Video{
		VideoRecord: domain.VideoRecord{
			Title:       "walking around town today",
			Description: "short",
			Views:       10,
			Comments:    int64p(0),
		},
	}

	tips := ImprovementsForVideo(v, 1000000)

	assert.Len(t, tips, maxTipsPerVideo, "tip list is capped")

	seen := make(map[string]struct{})
	for _, tip := range tips {
		if _, dup := seen[tip]; dup {
			t.Fatalf("duplicate tip %q", tip)
		}

		seen[tip] = struct{}{}
	}
}

func TestImprovementsFallback(t *testing.T) {
	strong := Video{
		VideoRecord: domain.VideoRecord{
			Title:       "The Ultimate Guide To Growing Your Channel in 90 Days Flat",
			Description: "0:00 intro. https://example.com " + repeatText("keyword rich description ", 10),
			Views:       5_000_000,
			Comments:    int64p(1200),
		},
	}

	tips := ImprovementsForVideo(strong, 1000)

	assert.Equal(t, []string{fallbackTip}, tips, "a video that trips no rule gets the fallback tip")
}

func repeatText(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}

	return out
}

func TestImprovementsThumbnailThreshold(t *testing.T) {
	v := Video{
		VideoRecord: domain.VideoRecord{
			Title:       "The Ultimate Guide To Growing Your Channel in 90 Days Flat",
			Description: "0:00 intro. https://example.com " + repeatText("keyword rich description ", 10),
			Views:       900, // below the absolute 1000-view floor
			Comments:    int64p(10),
		},
	}

	tips := ImprovementsForVideo(v, 0)

	assert.Contains(t, tips, "Test a stronger thumbnail: big face + 2-4 words + strong contrast.")
}

func TestChannelSummary(t *testing.T) {
	videos := []Video{
		{VideoRecord: domain.VideoRecord{Views: 1000}},
		{VideoRecord: domain.VideoRecord{Views: 3000}},
		{VideoRecord: domain.VideoRecord{Views: 20000}},
	}

	lines := ChannelSummary(videos)

	assert.Len(t, lines, 5)
	assert.Equal(t, "Median views across audited videos: 3,000.", lines[0])
}

func TestQuickWinsStatic(t *testing.T) {
	a := QuickWins()
	b := QuickWins()

	assert.Len(t, a, 5)
	assert.Equal(t, a, b, "quick wins are intentionally data-independent")
}
