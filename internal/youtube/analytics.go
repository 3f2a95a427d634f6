package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
	ytanalytics "google.golang.org/api/youtubeanalytics/v2"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
	coreerrors "github.com/charliesmith-boop/youtube-audit/internal/core/errors"
	"github.com/charliesmith-boop/youtube-audit/internal/platform/observability"
)

// Retention reports are only available to the channel owner, so the lookback
// just needs to be wide enough to cover any video on the channel.
const retentionLookbackYears = 5

// AnalyticsClient serves the OAuth-gated retention surface. It owns both an
// Analytics API service and a Data API service bound to the authenticated
// account for the ownership check.
type AnalyticsClient struct {
	analytics *ytanalytics.Service
	data      *ytapi.Service
	log       zerolog.Logger
	now       func() time.Time
}

func NewAnalyticsClient(ctx context.Context, secretFile, tokenFile string, log zerolog.Logger) (*AnalyticsClient, error) {
	_, source, err := oauthClient(ctx, secretFile, tokenFile, log)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, source)

	analytics, err := ytanalytics.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create analytics service: %w", err)
	}

	data, err := ytapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create authorized youtube service: %w", err)
	}

	return &AnalyticsClient{
		analytics: analytics,
		data:      data,
		log:       log.With().Str("component", "analytics").Logger(),
		now:       time.Now,
	}, nil
}

// MyChannelID returns the channel ID of the authenticated account.
func (c *AnalyticsClient) MyChannelID(ctx context.Context) (string, error) {
	resp, err := c.data.Channels.List([]string{"id"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list own channels: %w", err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Id == "" {
		return "", coreerrors.ErrNoChannelForAccount
	}

	return resp.Items[0].Id, nil
}

// RetentionCurve queries the audience retention report for one video. The
// API only serves the report for videos on the authenticated channel, and
// callers must verify ownership first for a readable error.
func (c *AnalyticsClient) RetentionCurve(ctx context.Context, videoID string) ([]domain.RetentionPoint, error) {
	end := c.now().UTC()
	start := end.AddDate(-retentionLookbackYears, 0, 0)

	resp, err := c.analytics.Reports.Query().
		Ids("channel==MINE").
		StartDate(start.Format("2006-01-02")).
		EndDate(end.Format("2006-01-02")).
		Metrics("audienceWatchRatio,relativeRetentionPerformance").
		Dimensions("elapsedVideoTimeRatio").
		Filters("video==" + videoID).
		Sort("elapsedVideoTimeRatio").
		Context(ctx).
		Do()
	if err != nil {
		observability.RetentionQueries.WithLabelValues("error").Inc()

		return nil, fmt.Errorf("query retention report: %w", err)
	}

	curve := make([]domain.RetentionPoint, 0, len(resp.Rows))

	for _, row := range resp.Rows {
		if len(row) < 3 {
			continue
		}

		curve = append(curve, domain.RetentionPoint{
			ElapsedRatio: asFloat(row[0]),
			WatchRatio:   asFloat(row[1]),
			RelativePerf: asFloat(row[2]),
		})
	}

	if len(curve) == 0 {
		observability.RetentionQueries.WithLabelValues("empty").Inc()

		return nil, coreerrors.ErrNoRetentionData
	}

	observability.RetentionQueries.WithLabelValues("ok").Inc()
	c.log.Debug().Str("video_id", videoID).Int("points", len(curve)).Msg("fetched retention curve")

	return curve, nil
}

// Report rows arrive as untyped JSON values.
func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
