package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

func TestTopDropInsightsWorstDrop(t *testing.T) {
	curve := []domain.RetentionPoint{
		{ElapsedRatio: 0.0, WatchRatio: 1.0},
		{ElapsedRatio: 0.05, WatchRatio: 0.95},
		{ElapsedRatio: 0.10, WatchRatio: 0.40},
	}

	insights := TopDropInsights(curve, 600, 1)

	assert.Len(t, insights, 1)
	assert.Equal(t, 60, insights[0].SecondOffset)
	assert.InDelta(t, 55.0, insights[0].DropPercent, 0.001)
	assert.Equal(t, domain.BucketRestateValue, insights[0].Bucket)
}

func TestTopDropInsightsBuckets(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    float64
		wantBucket string
	}{
		{"within hook window", 0.01, domain.BucketHook},
		{"intro pacing", 0.04, domain.BucketIntroPacing},
		{"restate value", 0.09, domain.BucketRestateValue},
		{"pattern break", 0.50, domain.BucketPatternBreak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve := []domain.RetentionPoint{
				{ElapsedRatio: 0.0, WatchRatio: 1.0},
				{ElapsedRatio: tt.elapsed, WatchRatio: 0.5},
			}

			insights := TopDropInsights(curve, 600, 1)

			assert.Len(t, insights, 1)
			assert.Equal(t, tt.wantBucket, insights[0].Bucket)
			assert.NotEmpty(t, insights[0].Tip)
		})
	}
}

func TestTopDropInsightsDegenerateInputs(t *testing.T) {
	curve := []domain.RetentionPoint{
		{ElapsedRatio: 0.0, WatchRatio: 1.0},
		{ElapsedRatio: 0.5, WatchRatio: 0.3},
	}

	assert.Nil(t, TopDropInsights(nil, 600, 5), "empty curve yields no insights")
	assert.Nil(t, TopDropInsights(curve, 0, 5), "zero duration never fabricates an insight")
	assert.Nil(t, TopDropInsights(curve, -10, 5), "negative duration never fabricates an insight")
	assert.Nil(t, TopDropInsights(curve, 600, 0))
}

func TestTopDropInsightsKLargerThanCurve(t *testing.T) {
	curve := []domain.RetentionPoint{
		{ElapsedRatio: 0.0, WatchRatio: 1.0},
		{ElapsedRatio: 0.5, WatchRatio: 0.8},
	}

	insights := TopDropInsights(curve, 300, 5)

	assert.Len(t, insights, 2, "k is bounded by the curve length")
	// Worst drop first; the flat first sample follows with a zero drop.
	assert.InDelta(t, 20.0, insights[0].DropPercent, 0.001)
	assert.InDelta(t, 0.0, insights[1].DropPercent, 0.001)
}

func TestFormatInsight(t *testing.T) {
	line := FormatInsight(domain.RetentionInsight{
		SecondOffset: 60,
		DropPercent:  55.0,
		Bucket:       domain.BucketRestateValue,
		Tip:          bucketTips[domain.BucketRestateValue],
	})

	assert.Equal(t, "~55.0% viewers dropped near 60s -> restate value, add motion/B-roll, remove a dead sentence.", line)
}
