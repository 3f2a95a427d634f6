// Package audit is the heuristic scoring and insight engine. Every function
// is a pure transformation of its inputs: no clock reads beyond the injected
// now, no randomness, no I/O. Identical inputs yield identical output.
package audit

import (
	"fmt"
	"time"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

// Video is one audited video with its derived annotations attached. The
// embedded source record is never mutated; annotations are additive.
type Video struct {
	domain.VideoRecord

	Metrics  domain.DerivedMetrics `json:"metrics"`
	SeoScore int                   `json:"seo_score"`
	Seo      domain.SeoBreakdown   `json:"seo"`
	Health   float64               `json:"health"`
	Tips     []string              `json:"tips"`
}

// KPISet is the channel-level metric summary shown at the top of a report.
type KPISet struct {
	Videos         int   `json:"videos"`
	AvgViews       int64 `json:"avg_views"`
	MedianLikes    int64 `json:"median_likes"`
	AvgViewsPerMin int64 `json:"avg_views_per_min"`
	AvgSeo         int   `json:"avg_seo"`
	Consistency    int   `json:"consistency"`
}

// SummaryLine is one channel-wide SEO miss count, e.g. how many audited
// videos lack a number in the title.
type SummaryLine struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Result is a full audit of one channel's recent videos.
type Result struct {
	Channel    domain.ChannelMeta   `json:"channel"`
	Videos     []Video              `json:"videos"`
	Cadence    domain.CadenceStats  `json:"cadence"`
	Health     domain.ChannelHealth `json:"health"`
	KPIs       KPISet               `json:"kpis"`
	SeoSummary []SummaryLine        `json:"seo_summary"`
	Insights   []string             `json:"insights"`
	Summary    []string             `json:"summary"`
	QuickWins  []string             `json:"quick_wins"`
	Keywords   []KeywordCount       `json:"keywords"`
}

// Run audits a complete batch of fetched records. This is deliberately a
// batch-level contract: z-score normalization and median-based thresholds
// measure each video against the rest of the batch, so it cannot be
// restated as a per-record stream.
func Run(channel domain.ChannelMeta, records []domain.VideoRecord, now time.Time) Result {
	videos := make([]Video, len(records))
	titles := make([]string, len(records))

	for i, rec := range records {
		v := Video{VideoRecord: rec}
		v.Metrics = Derive(rec, now)
		v.SeoScore, v.Seo = ScoreSEO(rec.Title, rec.Description, v.Metrics.LikeRate, v.Metrics.CommentRate, v.Metrics.DupWordPenalty)
		videos[i] = v
		titles[i] = rec.Title
	}

	HealthScores(videos)

	views := make([]float64, len(videos))
	for i, v := range videos {
		views[i] = float64(v.Views)
	}

	medianViews := median(views)
	for i := range videos {
		videos[i].Tips = ImprovementsForVideo(videos[i], medianViews)
	}

	cad := CadenceFromRecords(records)

	return Result{
		Channel:    channel,
		Videos:     videos,
		Cadence:    cad,
		Health:     ChannelHealthScore(videos, cad),
		KPIs:       kpis(videos, cad),
		SeoSummary: seoSummary(videos),
		Insights:   channelInsights(cad),
		Summary:    ChannelSummary(videos),
		QuickWins:  QuickWins(),
		Keywords:   KeywordDensity(titles),
	}
}

func kpis(videos []Video, cad domain.CadenceStats) KPISet {
	k := KPISet{
		Videos:      len(videos),
		Consistency: cad.Consistency,
	}

	if len(videos) == 0 {
		return k
	}

	var viewSum float64
	var likes, seoScores, vpms []float64

	for _, v := range videos {
		viewSum += float64(v.Views)
		seoScores = append(seoScores, float64(v.SeoScore))

		if v.Likes != nil {
			likes = append(likes, float64(*v.Likes))
		}

		if v.Metrics.ViewsPerMin != nil {
			vpms = append(vpms, *v.Metrics.ViewsPerMin)
		}
	}

	k.AvgViews = int64(viewSum / float64(len(videos)))
	k.MedianLikes = int64(median(likes))
	k.AvgViewsPerMin = int64(mean(vpms))
	k.AvgSeo = int(mean(seoScores))

	return k
}

// seoSummary aggregates breakdown misses across the batch, in the fixed
// order the report prints them.
func seoSummary(videos []Video) []SummaryLine {
	miss := func(flag func(domain.SeoBreakdown) bool) int {
		n := 0
		for _, v := range videos {
			if !flag(v.Seo) {
				n++
			}
		}

		return n
	}

	return []SummaryLine{
		{Label: "Missing number in title", Count: miss(func(b domain.SeoBreakdown) bool { return b.HasNumber })},
		{Label: "No power word", Count: miss(func(b domain.SeoBreakdown) bool { return b.PowerWord })},
		{Label: "Title length off", Count: miss(func(b domain.SeoBreakdown) bool { return b.TitleLenOK })},
		{Label: "No chapters", Count: miss(func(b domain.SeoBreakdown) bool { return b.Chapters })},
		{Label: "No link/CTA", Count: miss(func(b domain.SeoBreakdown) bool { return b.Links })},
		{Label: "Short description", Count: miss(func(b domain.SeoBreakdown) bool { return b.DescLenOK })},
	}
}

func channelInsights(cad domain.CadenceStats) []string {
	medianGap := "N/A"
	if cad.MedianGapDays != nil {
		medianGap = fmt.Sprintf("%g", *cad.MedianGapDays)
	}

	bestHour := "N/A"
	if cad.BestHourUTC != nil {
		bestHour = fmt.Sprintf("%d", *cad.BestHourUTC)
	}

	return []string{
		fmt.Sprintf("Cadence: %g uploads/week. Median gap %s days.", cad.UploadsPerWeek, medianGap),
		fmt.Sprintf("Best posting time (UTC): %s @ %s:00. Consistency %d/100.", cad.BestDay, bestHour, cad.Consistency),
		"Aim 45-70 chars, one number + one clear outcome. Avoid duplicate words.",
		"Keep description >200 chars with 1-2 key links near top. Add chapters.",
		"Refresh low-VPM videos with new title/thumbnail within 24h.",
	}
}
