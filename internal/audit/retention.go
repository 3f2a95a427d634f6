package audit

import (
	"fmt"
	"math"
	"sort"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

// DefaultInsightCount is how many drop-off points an analysis reports.
const DefaultInsightCount = 5

// Second-offset boundaries for the qualitative buckets.
const (
	hookWindowSecs    = 10
	introWindowSecs   = 30
	restateWindowSecs = 60
)

var bucketTips = map[string]string{
	domain.BucketHook:         "open with a stronger hook, quick payoff in 0-10s",
	domain.BucketIntroPacing:  "tighten intro, cut filler, show the outcome earlier",
	domain.BucketRestateValue: "restate value, add motion/B-roll, remove a dead sentence",
	domain.BucketPatternBreak: "refresh pacing or add pattern-break (graphic, jump-cut, reveal)",
}

// TopDropInsights finds the k largest audience drop-offs in a retention
// curve sorted by elapsed ratio and maps each to a recommendation bucketed
// by elapsed time. An empty curve or non-positive duration yields no
// insights; a missing duration never fabricates one.
func TopDropInsights(curve []domain.RetentionPoint, durationSecs, k int) []domain.RetentionInsight {
	if len(curve) == 0 || durationSecs <= 0 || k <= 0 {
		return nil
	}

	drops := make([]float64, len(curve))
	for i := 1; i < len(curve); i++ {
		drops[i] = curve[i].WatchRatio - curve[i-1].WatchRatio
	}

	// Most negative drops first; ties keep curve order.
	order := make([]int, len(curve))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return drops[order[a]] < drops[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}

	out := make([]domain.RetentionInsight, 0, k)

	for _, idx := range order[:k] {
		secs := int(math.Round(curve[idx].ElapsedRatio * float64(durationSecs)))

		out = append(out, domain.RetentionInsight{
			SecondOffset: secs,
			DropPercent:  math.Max(0, -drops[idx]*100),
			Bucket:       dropBucket(secs),
			Tip:          bucketTips[dropBucket(secs)],
		})
	}

	return out
}

func dropBucket(secs int) string {
	switch {
	case secs <= hookWindowSecs:
		return domain.BucketHook
	case secs <= introWindowSecs:
		return domain.BucketIntroPacing
	case secs <= restateWindowSecs:
		return domain.BucketRestateValue
	default:
		return domain.BucketPatternBreak
	}
}

// FormatInsight renders one insight as the report line shown to the user.
func FormatInsight(in domain.RetentionInsight) string {
	return fmt.Sprintf("~%.1f%% viewers dropped near %ds -> %s.", in.DropPercent, in.SecondOffset, in.Tip)
}
