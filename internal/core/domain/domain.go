package domain

import "time"

// VideoRecord is one audited video as supplied by the fetch collaborator.
// Counts the platform hides arrive as nil pointers and must stay nil through
// rate computations so downstream aggregates can skip them.
type VideoRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Views       int64      `json:"views"`
	Likes       *int64     `json:"likes"`
	Comments    *int64     `json:"comments"`
	PublishedAt *time.Time `json:"published_at"`
	Duration    string     `json:"duration"` // ISO-8601, e.g. "PT12M34S"

	// Optional analytics-sourced fields. Nil when the channel is audited
	// with a plain API key and no analytics access.
	CTR            *float64 `json:"ctr,omitempty"`
	WatchTimeHours *float64 `json:"watch_time_hours,omitempty"`
}

// DerivedMetrics are the per-video annotations computed from a VideoRecord.
type DerivedMetrics struct {
	LikeRate       *float64 `json:"like_rate"`    // percent, nil when views == 0 or like count unknown
	CommentRate    *float64 `json:"comment_rate"` // percent, nil when views == 0 or comment count unknown
	AgeMinutes     *float64 `json:"age_minutes"`  // nil when the publish instant is unknown
	ViewsPerMin    *float64 `json:"views_per_min"`
	TitleLen       int      `json:"title_len"`
	TitleLenOK     bool     `json:"title_len_ok"` // 45-70 chars inclusive
	DupWordPenalty int      `json:"dup_word_penalty"`
}

// SeoBreakdown carries every check behind a video's SEO score so the report
// can aggregate misses channel-wide.
type SeoBreakdown struct {
	TitleLenOK  bool    `json:"title_len_ok"`
	PowerWord   bool    `json:"power_word"`
	HasNumber   bool    `json:"has_number"`
	DupPenalty  int     `json:"dup_penalty"`
	DescLenOK   bool    `json:"desc_len_ok"`
	Chapters    bool    `json:"chapters"`
	Links       bool    `json:"links"`
	LikeRate    float64 `json:"like_rate"`
	CommentRate float64 `json:"comment_rate"`
}

// CadenceStats describes upload frequency and regularity.
type CadenceStats struct {
	UploadsPerWeek float64  `json:"uploads_per_week"`
	MedianGapDays  *float64 `json:"median_gap_days"` // nil when fewer than two parseable timestamps
	BestDay        string   `json:"best_day"`        // weekday name, "N/A" when unknown
	BestHourUTC    *int     `json:"best_hour_utc"`
	Consistency    int      `json:"consistency"` // 0-100
}

// ChannelHealth is the five-pillar weighted channel score. Each pillar is
// 0-100; Overall is the weighted combination.
type ChannelHealth struct {
	ContentOptimization float64 `json:"content_optimization"`
	Engagement          float64 `json:"engagement"`
	Consistency         float64 `json:"consistency"`
	Discoverability     float64 `json:"discoverability"`
	Retention           float64 `json:"retention"`
	Overall             float64 `json:"overall"`
}

// RetentionPoint is one sample of a video's retention curve.
type RetentionPoint struct {
	ElapsedRatio float64 `json:"elapsed_ratio"` // 0-1 position in the video
	WatchRatio   float64 `json:"watch_ratio"`   // 0-1 share of the audience still watching
	RelativePerf float64 `json:"relative_perf"` // platform-relative retention performance
}

// RetentionInsight is one drop-off finding mapped to a recommendation.
type RetentionInsight struct {
	SecondOffset int     `json:"second_offset"`
	DropPercent  float64 `json:"drop_percent"`
	Bucket       string  `json:"bucket"`
	Tip          string  `json:"tip"`
}

// ChannelMeta is the channel-level record supplied by the fetch collaborator.
type ChannelMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Subscribers int64  `json:"subscribers"`
	TotalViews  int64  `json:"total_views"`
}

// Retention insight buckets.
const (
	BucketHook         = "hook"
	BucketIntroPacing  = "intro-pacing"
	BucketRestateValue = "restate-value"
	BucketPatternBreak = "pattern-break"
)
