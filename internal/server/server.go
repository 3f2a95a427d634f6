// Package server is the HTTP API surface: channel audits, comparisons,
// retention analysis, idea generation, PDF export, and license
// administration.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
	"github.com/charliesmith-boop/youtube-audit/internal/license"
	"github.com/charliesmith-boop/youtube-audit/internal/platform/config"
)

const shutdownTimeout = 5 * time.Second

// Fetcher is the key-based Data API surface the handlers need.
type Fetcher interface {
	ResolveChannelID(ctx context.Context, input string) (string, error)
	RecentVideos(ctx context.Context, channelID string, n int) ([]domain.VideoRecord, error)
	ChannelMeta(ctx context.Context, channelID string) (domain.ChannelMeta, error)
	VideoMeta(ctx context.Context, videoID string) (channelID, title, durationISO string, err error)
}

// RetentionSource is the OAuth-gated analytics surface. Nil when the
// deployment has no OAuth credentials; the retention endpoint then returns
// 503.
type RetentionSource interface {
	MyChannelID(ctx context.Context) (string, error)
	RetentionCurve(ctx context.Context, videoID string) ([]domain.RetentionPoint, error)
}

type Server struct {
	cfg       *config.Config
	fetcher   Fetcher
	retention RetentionSource
	licenses  *license.Store
	log       zerolog.Logger
	now       func() time.Time

	limitersMu sync.Mutex
	limiters   map[string]*rate.Limiter
}

func New(cfg *config.Config, fetcher Fetcher, retention RetentionSource, licenses *license.Store, log zerolog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		fetcher:   fetcher,
		retention: retention,
		licenses:  licenses,
		log:       log.With().Str("component", "api").Logger(),
		now:       time.Now,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Router builds the full route tree. Audit surfaces sit behind the license
// check; license administration sits behind admin basic auth.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.observe)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit)

		r.Group(func(r chi.Router) {
			r.Use(s.requireLicense)

			r.Post("/audit", s.handleAudit)
			r.Post("/compare", s.handleCompare)
			r.Post("/retention", s.handleRetention)
			r.Post("/ideas/videos", s.handleVideoIdeas)
			r.Post("/ideas/thumbnails", s.handleThumbnailIdeas)
			r.Get("/report/pdf", s.handleReportPDF)
		})

		r.Route("/admin/licenses", func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/", s.handleListLicenses)
			r.Post("/", s.handleAddLicense)
			r.Delete("/{key}", s.handleDeleteLicense)
		})
	})

	return r
}

// Start serves the API until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.APIPort),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Int("port", s.cfg.APIPort).Msg("API server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server error: %w", err)
	}

	return nil
}

// clampVideoCount bounds a requested batch size to the configured window,
// substituting the default when the request leaves it unset.
func (s *Server) clampVideoCount(n int) int {
	if n <= 0 {
		return s.cfg.DefaultRecentVideos
	}

	if n > s.cfg.MaxRecentVideos {
		return s.cfg.MaxRecentVideos
	}

	return n
}
