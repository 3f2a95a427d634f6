package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/charliesmith-boop/youtube-audit/internal/audit"
	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
	coreerrors "github.com/charliesmith-boop/youtube-audit/internal/core/errors"
	"github.com/charliesmith-boop/youtube-audit/internal/ideas"
	"github.com/charliesmith-boop/youtube-audit/internal/platform/observability"
	"github.com/charliesmith-boop/youtube-audit/internal/report"
	"github.com/charliesmith-boop/youtube-audit/internal/youtube"
)

const (
	ideasFetchWindow  = 40
	defaultIdeaCount  = 8
	minIdeaCount      = 5
	maxIdeaCount      = 25
	maxIdeaSeedCount  = 12
	defaultComparison = "You"
)

type auditRequest struct {
	Channel string `json:"channel"`
	Videos  int    `json:"videos"`
}

type auditResponse struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	audit.Result
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Channel == "" {
		writeError(w, http.StatusBadRequest, "body must include a channel")

		return
	}

	start := time.Now()

	res, err := s.runAudit(r, req.Channel, req.Videos)
	if err != nil {
		observability.AuditsRun.WithLabelValues("error").Inc()
		s.writeDomainError(w, err)

		return
	}

	observability.AuditsRun.WithLabelValues("ok").Inc()
	observability.AuditDuration.Observe(time.Since(start).Seconds())
	observability.AuditBatchSize.Observe(float64(len(res.Videos)))

	writeJSON(w, http.StatusOK, auditResponse{
		RunID:       uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Result:      res,
	})
}

type compareRequest struct {
	Channels []struct {
		Label   string `json:"label"`
		Channel string `json:"channel"`
	} `json:"channels"`
	Videos int `json:"videos"`
}

type compareResponse struct {
	RunID string `json:"run_id"`

	audit.Comparison
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Channels) < 2 {
		writeError(w, http.StatusBadRequest, "body must include at least two channels")

		return
	}

	n := s.clampVideoCount(req.Videos)
	now := s.now().UTC()
	batches := make([]audit.ChannelBatch, 0, len(req.Channels))

	for i, entry := range req.Channels {
		id, err := s.fetcher.ResolveChannelID(r.Context(), entry.Channel)
		if err != nil {
			s.writeDomainError(w, fmt.Errorf("resolve %q: %w", entry.Channel, err))

			return
		}

		records, err := s.fetcher.RecentVideos(r.Context(), id, n)
		if err != nil {
			s.writeDomainError(w, err)

			return
		}

		meta, err := s.fetcher.ChannelMeta(r.Context(), id)
		if err != nil {
			meta = domain.ChannelMeta{ID: id, Name: entry.Channel}
		}

		batches = append(batches, audit.ChannelBatch{
			Label:   comparisonLabel(entry.Label, i),
			Channel: meta,
			Records: records,
		})
	}

	observability.ComparisonsRun.Inc()

	writeJSON(w, http.StatusOK, compareResponse{
		RunID:      uuid.NewString(),
		Comparison: audit.Compare(batches, now),
	})
}

type retentionRequest struct {
	Video    string `json:"video"`
	Insights int    `json:"insights"`
}

type retentionResponse struct {
	VideoID      string                    `json:"video_id"`
	Title        string                    `json:"title"`
	DurationSecs int                       `json:"duration_secs"`
	Curve        []domain.RetentionPoint   `json:"curve"`
	Insights     []domain.RetentionInsight `json:"insights"`
	Lines        []string                  `json:"lines"`
}

func (s *Server) handleRetention(w http.ResponseWriter, r *http.Request) {
	if s.retention == nil {
		writeError(w, http.StatusServiceUnavailable, "retention analysis requires OAuth credentials")

		return
	}

	var req retentionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")

		return
	}

	videoID := youtube.ExtractVideoID(req.Video)
	if videoID == "" {
		writeError(w, http.StatusBadRequest, "body must include a video URL or ID")

		return
	}

	ownerID, title, durationISO, err := s.fetcher.VideoMeta(r.Context(), videoID)
	if err != nil {
		s.writeDomainError(w, err)

		return
	}

	myID, err := s.retention.MyChannelID(r.Context())
	if err != nil {
		s.writeDomainError(w, err)

		return
	}

	if ownerID != myID {
		s.writeDomainError(w, coreerrors.ErrNotOwnVideo)

		return
	}

	curve, err := s.retention.RetentionCurve(r.Context(), videoID)
	if err != nil {
		s.writeDomainError(w, err)

		return
	}

	k := req.Insights
	if k <= 0 {
		k = s.cfg.RetentionInsights
	}

	durationSecs := youtube.ParseISODuration(durationISO)
	insights := audit.TopDropInsights(curve, durationSecs, k)

	lines := make([]string, 0, len(insights))
	for _, in := range insights {
		lines = append(lines, audit.FormatInsight(in))
	}

	writeJSON(w, http.StatusOK, retentionResponse{
		VideoID:      videoID,
		Title:        title,
		DurationSecs: durationSecs,
		Curve:        curve,
		Insights:     insights,
		Lines:        lines,
	})
}

type videoIdeasRequest struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

type videoIdeasResponse struct {
	ChannelID string   `json:"channel_id"`
	Seeds     []string `json:"seeds"`
	Titles    []string `json:"titles"`
}

func (s *Server) handleVideoIdeas(w http.ResponseWriter, r *http.Request) {
	var req videoIdeasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Channel == "" {
		writeError(w, http.StatusBadRequest, "body must include a channel")

		return
	}

	count := req.Count
	if count <= 0 {
		count = defaultIdeaCount
	}

	if count < minIdeaCount {
		count = minIdeaCount
	}

	if count > maxIdeaCount {
		count = maxIdeaCount
	}

	id, err := s.fetcher.ResolveChannelID(r.Context(), req.Channel)
	if err != nil {
		s.writeDomainError(w, err)

		return
	}

	records, err := s.fetcher.RecentVideos(r.Context(), id, ideasFetchWindow)
	if err != nil {
		s.writeDomainError(w, err)

		return
	}

	titles := make([]string, 0, len(records))
	for _, rec := range records {
		titles = append(titles, rec.Title)
	}

	seeds := make([]string, 0, maxIdeaSeedCount)
	for _, kw := range audit.KeywordDensity(titles) {
		seeds = append(seeds, kw.Word)

		if len(seeds) == maxIdeaSeedCount {
			break
		}
	}

	writeJSON(w, http.StatusOK, videoIdeasResponse{
		ChannelID: id,
		Seeds:     seeds,
		Titles:    ideas.VideoTitles(seeds, count),
	})
}

type thumbnailIdeasRequest struct {
	Hint string `json:"hint"`
}

type thumbnailIdeasResponse struct {
	Concepts []string `json:"concepts"`
}

func (s *Server) handleThumbnailIdeas(w http.ResponseWriter, r *http.Request) {
	var req thumbnailIdeasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")

		return
	}

	writeJSON(w, http.StatusOK, thumbnailIdeasResponse{Concepts: ideas.ThumbnailConcepts(req.Hint)})
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		writeError(w, http.StatusBadRequest, "channel query parameter required")

		return
	}

	videos, _ := strconv.Atoi(r.URL.Query().Get("videos"))

	res, err := s.runAudit(r, channel, videos)
	if err != nil {
		observability.ReportsRendered.WithLabelValues("error").Inc()
		s.writeDomainError(w, err)

		return
	}

	doc := report.Build(res, s.now().UTC())

	data, err := report.Render(doc)
	if err != nil {
		observability.ReportsRendered.WithLabelValues("error").Inc()
		s.writeDomainError(w, err)

		return
	}

	observability.ReportsRendered.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type licenseEntry struct {
	Key       string    `json:"key"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_utc"`
}

func (s *Server) handleListLicenses(w http.ResponseWriter, r *http.Request) {
	store := s.licenses.List()
	out := make([]licenseEntry, 0, len(store))

	for key, entry := range store {
		out = append(out, licenseEntry{Key: key, Note: entry.Note, CreatedAt: entry.CreatedAt})
	}

	writeJSON(w, http.StatusOK, map[string][]licenseEntry{"licenses": out})
}

type addLicenseRequest struct {
	Key  string `json:"key"`
	Note string `json:"note"`
}

func (s *Server) handleAddLicense(w http.ResponseWriter, r *http.Request) {
	var req addLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeError(w, http.StatusBadRequest, "body must include a key")

		return
	}

	if err := s.licenses.Add(req.Key, req.Note, s.now()); err != nil {
		s.writeDomainError(w, err)

		return
	}

	s.log.Info().Str("note", req.Note).Msg("license key added")
	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (s *Server) handleDeleteLicense(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := s.licenses.Delete(key); err != nil {
		s.writeDomainError(w, err)

		return
	}

	s.log.Info().Msg("license key deleted")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// runAudit is the shared fetch-then-score path behind the audit and report
// endpoints.
func (s *Server) runAudit(r *http.Request, channel string, videos int) (audit.Result, error) {
	ctx := r.Context()

	id, err := s.fetcher.ResolveChannelID(ctx, channel)
	if err != nil {
		return audit.Result{}, err
	}

	records, err := s.fetcher.RecentVideos(ctx, id, s.clampVideoCount(videos))
	if err != nil {
		return audit.Result{}, err
	}

	meta, err := s.fetcher.ChannelMeta(ctx, id)
	if err != nil {
		// The audit itself only needs the records; degrade to a bare
		// header rather than failing the whole run.
		s.log.Warn().Err(err).Str("channel_id", id).Msg("channel meta fetch failed")

		meta = domain.ChannelMeta{ID: id, Name: channel}
	}

	return audit.Run(meta, records, s.now().UTC()), nil
}

func comparisonLabel(label string, i int) string {
	if label != "" {
		return label
	}

	if i == 0 {
		return defaultComparison
	}

	return string(rune('A' + i - 1))
}
