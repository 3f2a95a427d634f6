// Package youtube wraps the Google Data and Analytics APIs behind the small
// fetch surface the audit engine needs: channel resolution, recent uploads
// with statistics, channel metadata, and retention curves.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
	coreerrors "github.com/charliesmith-boop/youtube-audit/internal/core/errors"
	"github.com/charliesmith-boop/youtube-audit/internal/platform/observability"
)

const (
	pageSize       = 50
	statsBatchSize = 50
	retryAttempts  = 3
	retryBaseDelay = 200 * time.Millisecond
	defaultBurst   = 1
)

// Client is the key-based Data API client. All calls go through a shared
// rate limiter so batch audits stay inside the configured request rate.
type Client struct {
	svc     *ytapi.Service
	limiter *rate.Limiter
	log     zerolog.Logger
}

func NewClient(ctx context.Context, apiKey string, rps float64, log zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("youtube: api key is required")
	}

	svc, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	if rps <= 0 {
		rps = 5
	}

	return &Client{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(rps), defaultBurst),
		log:     log.With().Str("component", "youtube").Logger(),
	}, nil
}

// ResolveChannelID turns a channel URL, @handle, bare UC ID, or free-text
// query into a channel ID. Returns ErrChannelNotFound when nothing matches.
func (c *Client) ResolveChannelID(ctx context.Context, input string) (string, error) {
	ref := parseChannelInput(input)
	if ref.ID != "" {
		return ref.ID, nil
	}

	query := ref.Query
	if ref.Handle != "" {
		query = ref.Handle
	}

	var id string

	err := c.call(ctx, "search", func() error {
		resp, err := c.svc.Search.List([]string{"snippet"}).
			Q(query).
			Type("channel").
			MaxResults(1).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}

		if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
			return coreerrors.ErrChannelNotFound
		}

		id = resp.Items[0].Snippet.ChannelId

		return nil
	})
	if err != nil {
		return "", err
	}

	if id == "" {
		return "", coreerrors.ErrChannelNotFound
	}

	return id, nil
}

// RecentVideos returns up to n uploads from the channel's uploads playlist,
// newest first, with statistics attached.
func (c *Client) RecentVideos(ctx context.Context, channelID string, n int) ([]domain.VideoRecord, error) {
	playlistID, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	ids, published, err := c.playlistVideoIDs(ctx, playlistID, n)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, coreerrors.ErrNoUploads
	}

	records, err := c.videoStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Playlist items carry the publish instant even when the videos call
	// omits it, so prefer the playlist timestamp.
	for i := range records {
		if ts, ok := published[records[i].ID]; ok {
			records[i].PublishedAt = ts
		}
	}

	c.log.Debug().
		Str("channel_id", channelID).
		Int("videos", len(records)).
		Msg("fetched recent uploads")

	return records, nil
}

// ChannelMeta fetches the channel title and lifetime statistics.
func (c *Client) ChannelMeta(ctx context.Context, channelID string) (domain.ChannelMeta, error) {
	var meta domain.ChannelMeta

	err := c.call(ctx, "channels", func() error {
		resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).
			Id(channelID).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}

		if len(resp.Items) == 0 {
			return coreerrors.ErrChannelNotFound
		}

		item := resp.Items[0]
		meta = domain.ChannelMeta{
			ID:  channelID,
			URL: "https://www.youtube.com/channel/" + channelID,
		}

		if item.Snippet != nil {
			meta.Name = item.Snippet.Title
		}

		if item.Statistics != nil {
			meta.Subscribers = int64(item.Statistics.SubscriberCount)
			meta.TotalViews = int64(item.Statistics.ViewCount)
		}

		return nil
	})
	if err != nil {
		return domain.ChannelMeta{}, err
	}

	return meta, nil
}

// VideoMeta returns the owning channel, title, and ISO-8601 duration for a
// single video. Used by the retention surface for the ownership check.
func (c *Client) VideoMeta(ctx context.Context, videoID string) (channelID, title, durationISO string, err error) {
	err = c.call(ctx, "videos", func() error {
		resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails"}).
			Id(videoID).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}

		if len(resp.Items) == 0 {
			return coreerrors.ErrVideoNotFound
		}

		item := resp.Items[0]
		if item.Snippet != nil {
			channelID = item.Snippet.ChannelId
			title = item.Snippet.Title
		}

		if item.ContentDetails != nil {
			durationISO = item.ContentDetails.Duration
		}

		return nil
	})

	return channelID, title, durationISO, err
}

func (c *Client) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	var playlistID string

	err := c.call(ctx, "channels", func() error {
		resp, err := c.svc.Channels.List([]string{"contentDetails"}).
			Id(channelID).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}

		if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil ||
			resp.Items[0].ContentDetails.RelatedPlaylists == nil {
			return coreerrors.ErrChannelNotFound
		}

		playlistID = resp.Items[0].ContentDetails.RelatedPlaylists.Uploads

		return nil
	})
	if err != nil {
		return "", err
	}

	if playlistID == "" {
		return "", coreerrors.ErrNoUploads
	}

	return playlistID, nil
}

func (c *Client) playlistVideoIDs(ctx context.Context, playlistID string, n int) ([]string, map[string]*time.Time, error) {
	ids := make([]string, 0, n)
	published := make(map[string]*time.Time, n)
	pageToken := ""

	for len(ids) < n {
		var resp *ytapi.PlaylistItemListResponse

		err := c.call(ctx, "playlistItems", func() error {
			call := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(pageSize).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}

			var err error
			resp, err = call.Do()

			return err
		})
		if err != nil {
			return nil, nil, err
		}

		for _, item := range resp.Items {
			if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
				continue
			}

			ids = append(ids, item.ContentDetails.VideoId)

			if ts, err := time.Parse(time.RFC3339, item.ContentDetails.VideoPublishedAt); err == nil {
				utc := ts.UTC()
				published[item.ContentDetails.VideoId] = &utc
			}

			if len(ids) >= n {
				break
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return ids, published, nil
}

func (c *Client) videoStats(ctx context.Context, ids []string) ([]domain.VideoRecord, error) {
	records := make([]domain.VideoRecord, 0, len(ids))

	for start := 0; start < len(ids); start += statsBatchSize {
		end := start + statsBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		var resp *ytapi.VideoListResponse

		err := c.call(ctx, "videos", func() error {
			var err error
			resp, err = c.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
				Id(strings.Join(ids[start:end], ",")).
				Context(ctx).
				Do()

			return err
		})
		if err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			rec := domain.VideoRecord{ID: item.Id}

			if item.Snippet != nil {
				rec.Title = item.Snippet.Title
				rec.Description = item.Snippet.Description

				if ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
					utc := ts.UTC()
					rec.PublishedAt = &utc
				}
			}

			if item.ContentDetails != nil {
				rec.Duration = item.ContentDetails.Duration
			}

			if item.Statistics != nil {
				rec.Views = int64(item.Statistics.ViewCount)
				likes := int64(item.Statistics.LikeCount)
				comments := int64(item.Statistics.CommentCount)
				rec.Likes = &likes
				rec.Comments = &comments
			}

			records = append(records, rec)
		}
	}

	return records, nil
}

// call runs one API request with rate limiting, transient-error retry, and
// per-endpoint metrics.
func (c *Client) call(ctx context.Context, endpoint string, fn func() error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	started := time.Now()
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(); err != nil {
			if isTransient(err) {
				return retry.RetryableError(err)
			}

			return err
		}

		return nil
	})

	observability.YouTubeAPIDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())

	status := "ok"
	if err != nil {
		status = "error"

		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("youtube api call failed")
	}

	observability.YouTubeAPICalls.WithLabelValues(endpoint, status).Inc()

	return err
}

func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}

	return false
}
