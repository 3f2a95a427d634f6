// Package app provides the application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// different operational modes:
//
//   - Serve mode: HTTP API for audits, comparisons, retention, ideas, and
//     PDF export
//   - Audit mode: one-shot channel audit printed to stdout
//   - Compare mode: one-shot multi-channel comparison printed to stdout
//   - Retention mode: one-shot drop-off analysis for a single owned video
//
// Each mode can be run independently based on deployment needs.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/charliesmith-boop/youtube-audit/internal/audit"
	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
	coreerrors "github.com/charliesmith-boop/youtube-audit/internal/core/errors"
	"github.com/charliesmith-boop/youtube-audit/internal/license"
	"github.com/charliesmith-boop/youtube-audit/internal/platform/config"
	"github.com/charliesmith-boop/youtube-audit/internal/platform/observability"
	"github.com/charliesmith-boop/youtube-audit/internal/server"
	"github.com/charliesmith-boop/youtube-audit/internal/youtube"
)

// App holds the application dependencies and provides methods to run
// different modes.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	ready := func(context.Context) error {
		if a.cfg.APIKey() == "" {
			return fmt.Errorf("youtube api key not configured")
		}

		return nil
	}

	return observability.NewServer(a.cfg.HealthPort, ready, a.logger).Start(ctx)
}

// RunServe runs the HTTP API mode.
func (a *App) RunServe(ctx context.Context) error {
	a.logger.Info().Msg("Starting API mode")

	client, err := a.newClient(ctx)
	if err != nil {
		return err
	}

	// The retention surface is optional: without OAuth credentials the rest
	// of the API still works.
	var retention server.RetentionSource

	analytics, err := youtube.NewAnalyticsClient(ctx, a.cfg.ClientSecretFile, a.cfg.OAuthTokenFile, *a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("retention surface disabled, OAuth credentials unavailable")
	} else {
		retention = analytics
	}

	licenses := license.NewStore(a.cfg.LicenseStoreFile)

	return server.New(a.cfg, client, retention, licenses, *a.logger).Start(ctx)
}

// RunAudit runs a one-shot audit and prints the summary.
func (a *App) RunAudit(ctx context.Context, channel string, videos int) error {
	if channel == "" {
		return fmt.Errorf("%w: --channel is required", coreerrors.ErrInvalidInput)
	}

	client, err := a.newClient(ctx)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	a.logger.Info().Str("run_id", runID).Str("channel", channel).Msg("Starting audit")

	id, err := client.ResolveChannelID(ctx, channel)
	if err != nil {
		return err
	}

	records, err := client.RecentVideos(ctx, id, a.clampVideos(videos))
	if err != nil {
		return err
	}

	meta, err := client.ChannelMeta(ctx, id)
	if err != nil {
		meta = domain.ChannelMeta{ID: id, Name: channel}
	}

	res := audit.Run(meta, records, time.Now().UTC())
	printAudit(res)

	return nil
}

// RunCompare runs a one-shot comparison across channels and prints the
// merged table.
func (a *App) RunCompare(ctx context.Context, channels []string, videos int) error {
	if len(channels) < 2 {
		return fmt.Errorf("%w: --channels needs at least two entries", coreerrors.ErrInvalidInput)
	}

	client, err := a.newClient(ctx)
	if err != nil {
		return err
	}

	n := a.clampVideos(videos)
	batches := make([]audit.ChannelBatch, 0, len(channels))

	for i, input := range channels {
		id, err := client.ResolveChannelID(ctx, input)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", input, err)
		}

		records, err := client.RecentVideos(ctx, id, n)
		if err != nil {
			return err
		}

		label := "You"
		if i > 0 {
			label = string(rune('A' + i - 1))
		}

		batches = append(batches, audit.ChannelBatch{Label: label, Records: records})
	}

	comparison := audit.Compare(batches, time.Now().UTC())

	for _, row := range comparison.Rows {
		vpm := 0.0
		if row.Video.Metrics.ViewsPerMin != nil {
			vpm = *row.Video.Metrics.ViewsPerMin
		}

		fmt.Printf("%-6s %-60s views=%d vpm=%.2f\n", row.Who, truncate(row.Video.Title, 60), row.Video.Views, vpm)
	}

	return nil
}

// RunRetention runs a one-shot retention analysis for a video on the
// authenticated channel.
func (a *App) RunRetention(ctx context.Context, video string) error {
	videoID := youtube.ExtractVideoID(video)
	if videoID == "" {
		return fmt.Errorf("%w: --video is required", coreerrors.ErrInvalidInput)
	}

	client, err := a.newClient(ctx)
	if err != nil {
		return err
	}

	analytics, err := youtube.NewAnalyticsClient(ctx, a.cfg.ClientSecretFile, a.cfg.OAuthTokenFile, *a.logger)
	if err != nil {
		return err
	}

	ownerID, title, durationISO, err := client.VideoMeta(ctx, videoID)
	if err != nil {
		return err
	}

	myID, err := analytics.MyChannelID(ctx)
	if err != nil {
		return err
	}

	if ownerID != myID {
		return coreerrors.ErrNotOwnVideo
	}

	curve, err := analytics.RetentionCurve(ctx, videoID)
	if err != nil {
		return err
	}

	durationSecs := youtube.ParseISODuration(durationISO)
	insights := audit.TopDropInsights(curve, durationSecs, a.cfg.RetentionInsights)

	fmt.Printf("Retention for %q (%ds, %d curve points)\n", title, durationSecs, len(curve))

	if len(insights) == 0 {
		fmt.Println("No clear drop points detected. Keep pacing tight in the first 30-60 seconds.")

		return nil
	}

	for _, in := range insights {
		fmt.Println("- " + audit.FormatInsight(in))
	}

	return nil
}

func (a *App) newClient(ctx context.Context) (*youtube.Client, error) {
	return youtube.NewClient(ctx, a.cfg.APIKey(), a.cfg.YouTubeRPS, *a.logger)
}

func (a *App) clampVideos(n int) int {
	if n <= 0 {
		return a.cfg.DefaultRecentVideos
	}

	if n > a.cfg.MaxRecentVideos {
		return a.cfg.MaxRecentVideos
	}

	return n
}

func printAudit(res audit.Result) {
	fmt.Printf("Channel: %s (%s)\n", res.Channel.Name, res.Channel.URL)
	fmt.Printf("KPIs: videos=%d avg_views=%d median_likes=%d avg_seo=%d/100 consistency=%d/100\n",
		res.KPIs.Videos, res.KPIs.AvgViews, res.KPIs.MedianLikes, res.KPIs.AvgSeo, res.KPIs.Consistency)
	fmt.Printf("Health: overall=%.1f optimization=%.1f engagement=%.1f consistency=%.1f discoverability=%.1f retention=%.1f\n",
		res.Health.Overall, res.Health.ContentOptimization, res.Health.Engagement,
		res.Health.Consistency, res.Health.Discoverability, res.Health.Retention)

	fmt.Println("\nVideos:")

	for _, v := range res.Videos {
		fmt.Printf("- [SEO %3d | health %5.1f] %s\n", v.SeoScore, v.Health, truncate(v.Title, 70))

		for _, tip := range v.Tips {
			fmt.Println("    * " + tip)
		}
	}

	fmt.Println("\nInsights:")

	for _, line := range res.Insights {
		fmt.Println("- " + line)
	}

	fmt.Println("\nQuick wins:")

	for _, line := range res.QuickWins {
		fmt.Println("- " + line)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return strings.TrimRight(string(runes[:n-3]), " ") + "..."
}
