package audit

import (
	"math"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

// Per-video health formula constants.
const (
	zClipLo = -2.0
	zClipHi = 3.0

	velocityWeight   = 60.0
	likeRateClip     = 5.0
	likeRateWeight   = 4.0
	dupPenaltyClip   = 3.0
	dupPenaltyWeight = 3.0
	titleFitBonus    = 5.0
)

// Channel health pillar weights, summing to 100.
const (
	weightContentOptimization = 25
	weightEngagement          = 20
	weightConsistency         = 15
	weightDiscoverability     = 20
	weightRetention           = 20
)

// Channel health proxy constants. Every pillar is a cheap proxy pending
// richer analytics data; the formulas are preserved as documented.
const (
	engagementScale      = 2.0
	discoverabilityScale = 10.0
	seoProxyScale        = 0.9
	retentionBase        = 50.0
	retentionPerHour     = 5.0
)

// HealthScores fills in the per-video 0-100 health score for the whole
// batch. It is a batch operation: the views-per-minute z-score measures
// each video's standing relative to the channel's other audited videos,
// so the caller must pass the complete batch in one call.
func HealthScores(videos []Video) {
	vpms := make([]float64, 0, len(videos))
	for _, v := range videos {
		if v.Metrics.ViewsPerMin != nil {
			vpms = append(vpms, *v.Metrics.ViewsPerMin)
		}
	}

	m := mean(vpms)
	std := populationStd(vpms)

	for i := range videos {
		z := 0.0
		if std > 0 && videos[i].Metrics.ViewsPerMin != nil {
			z = (*videos[i].Metrics.ViewsPerMin - m) / std
		}

		videos[i].Health = healthScore(z, videos[i].Metrics)
	}
}

func healthScore(vpmZ float64, m domain.DerivedMetrics) float64 {
	score := (clip(vpmZ, zClipLo, zClipHi) + 2) / 5 * velocityWeight
	score += clip(derefOrZero(m.LikeRate), 0, likeRateClip) * likeRateWeight
	score -= clip(float64(m.DupWordPenalty), 0, dupPenaltyClip) * dupPenaltyWeight

	if m.TitleLenOK {
		score += titleFitBonus
	}

	return clip(round1(score), 0, 100)
}

// ChannelHealthScore estimates the five-pillar channel health from the batch
// statistics. Missing inputs substitute documented defaults; no input state
// makes this fail.
func ChannelHealthScore(videos []Video, cadence domain.CadenceStats) domain.ChannelHealth {
	var seoScores, erList, ctrList, wtList []float64

	for _, v := range videos {
		seoScores = append(seoScores, float64(v.SeoScore))

		if v.Views > 0 {
			likes := float64(int64OrZero(v.Likes))
			comments := float64(int64OrZero(v.Comments))
			erList = append(erList, (likes+comments)/float64(v.Views)*100)
		}

		if v.CTR != nil {
			ctrList = append(ctrList, *v.CTR)
		}

		if v.WatchTimeHours != nil {
			wtList = append(wtList, *v.WatchTimeHours)
		}
	}

	avgSeo := mean(seoScores)
	avgCTR := mean(ctrList)
	avgWT := mean(wtList)

	h := domain.ChannelHealth{
		ContentOptimization: math.Min(100, avgSeo),
		Consistency:         float64(cadence.Consistency),
		Retention:           math.Min(100, retentionBase+avgWT*retentionPerHour),
	}

	if len(erList) > 0 {
		h.Engagement = clip(mean(erList)*engagementScale, 0, 100)
	} else {
		// CTR stands in when no engagement counts exist at all.
		h.Engagement = clip(avgCTR, 0, 100)
	}

	if avgCTR > 0 {
		h.Discoverability = math.Min(100, avgCTR*discoverabilityScale)
	} else {
		h.Discoverability = math.Min(100, avgSeo*seoProxyScale)
	}

	h.Overall = (h.ContentOptimization*weightContentOptimization +
		h.Engagement*weightEngagement +
		h.Consistency*weightConsistency +
		h.Discoverability*weightDiscoverability +
		h.Retention*weightRetention) / 100

	return h
}

func int64OrZero(p *int64) int64 {
	if p == nil {
		return 0
	}

	return *p
}
