package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
	coreerrors "github.com/charliesmith-boop/youtube-audit/internal/core/errors"
	"github.com/charliesmith-boop/youtube-audit/internal/license"
	"github.com/charliesmith-boop/youtube-audit/internal/platform/config"
)

type stubFetcher struct {
	channelID string
	records   []domain.VideoRecord
	meta      domain.ChannelMeta

	videoOwner    string
	videoTitle    string
	videoDuration string

	resolveErr error
	recentErr  error
}

func (f *stubFetcher) ResolveChannelID(_ context.Context, _ string) (string, error) {
	return f.channelID, f.resolveErr
}

func (f *stubFetcher) RecentVideos(_ context.Context, _ string, n int) ([]domain.VideoRecord, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}

	if n < len(f.records) {
		return f.records[:n], nil
	}

	return f.records, nil
}

func (f *stubFetcher) ChannelMeta(_ context.Context, _ string) (domain.ChannelMeta, error) {
	return f.meta, nil
}

func (f *stubFetcher) VideoMeta(_ context.Context, _ string) (string, string, string, error) {
	return f.videoOwner, f.videoTitle, f.videoDuration, nil
}

type stubRetention struct {
	myChannel string
	curve     []domain.RetentionPoint
	curveErr  error
}

func (r *stubRetention) MyChannelID(_ context.Context) (string, error) {
	return r.myChannel, nil
}

func (r *stubRetention) RetentionCurve(_ context.Context, _ string) ([]domain.RetentionPoint, error) {
	return r.curve, r.curveErr
}

func fixtureRecords() []domain.VideoRecord {
	now := time.Date(2026, 7, 20, 12, 0, 0, 0, time.UTC)
	records := make([]domain.VideoRecord, 3)

	for i := range records {
		published := now.AddDate(0, 0, -7*(i+1))
		likes := int64(500 - 100*i)
		comments := int64(40)

		records[i] = domain.VideoRecord{
			ID:          string(rune('a' + i)),
			Title:       "The Ultimate Guide To Growing Your Channel in 90 Days Flat",
			Description: "00:00 Intro\nhttps://example.com plus enough words to be useful.",
			Views:       int64(10000 - 2000*i),
			Likes:       &likes,
			Comments:    &comments,
			PublishedAt: &published,
		}
	}

	return records
}

func testServer(t *testing.T, retention RetentionSource) (*Server, *license.Store) {
	t.Helper()

	cfg := &config.Config{
		AdminPassword:       "hunter2",
		APIPort:             8080,
		DefaultRecentVideos: 10,
		MaxRecentVideos:     40,
		RetentionInsights:   5,
		APIRateLimitRPS:     100,
		APIRateLimitBurst:   100,
	}

	licenses := license.NewStore(filepath.Join(t.TempDir(), "licenses.json"))
	require.NoError(t, licenses.Add("VALID-KEY", "test", time.Now()))

	fetcher := &stubFetcher{
		channelID: "UCstub",
		records:   fixtureRecords(),
		meta: domain.ChannelMeta{
			ID: "UCstub", Name: "Stub Channel",
			URL: "https://www.youtube.com/channel/UCstub", Subscribers: 1000, TotalViews: 99999,
		},
		videoOwner:    "UCstub",
		videoTitle:    "Some Video",
		videoDuration: "PT2M0S",
	}

	srv := New(cfg, fetcher, retention, licenses, zerolog.Nop())
	srv.now = func() time.Time { return time.Date(2026, 7, 20, 13, 0, 0, 0, time.UTC) }

	return srv, licenses
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func licensed() map[string]string {
	return map[string]string{licenseHeader: "VALID-KEY"}
}

func TestAuditRequiresLicense(t *testing.T) {
	srv, _ := testServer(t, nil)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/audit", auditRequest{Channel: "@stub"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/audit", auditRequest{Channel: "@stub"},
		map[string]string{licenseHeader: "WRONG"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuditHappyPath(t *testing.T) {
	srv, _ := testServer(t, nil)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/audit", auditRequest{Channel: "@stub"}, licensed())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID   string `json:"run_id"`
		Channel struct {
			Name string `json:"name"`
		} `json:"channel"`
		Videos []struct {
			SeoScore int      `json:"seo_score"`
			Tips     []string `json:"tips"`
		} `json:"videos"`
		KPIs struct {
			Videos int `json:"videos"`
		} `json:"kpis"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "Stub Channel", resp.Channel.Name)
	assert.Equal(t, 3, resp.KPIs.Videos)
	require.Len(t, resp.Videos, 3)
	assert.Positive(t, resp.Videos[0].SeoScore)
	assert.NotEmpty(t, resp.Videos[0].Tips)
}

func TestAuditBadBody(t *testing.T) {
	srv, _ := testServer(t, nil)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/audit", map[string]int{"videos": 5}, licensed())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareNeedsTwoChannels(t *testing.T) {
	srv, _ := testServer(t, nil)

	body := map[string]any{"channels": []map[string]string{{"channel": "@one"}}}
	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/compare", body, licensed())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareMergesBatches(t *testing.T) {
	srv, _ := testServer(t, nil)

	body := map[string]any{
		"channels": []map[string]string{{"channel": "@one"}, {"channel": "@two", "label": "Rival"}},
		"videos":   2,
	}

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/compare", body, licensed())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Rows []struct {
			Who string `json:"who"`
		} `json:"rows"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 4)
	assert.Equal(t, "You", resp.Rows[0].Who)
	assert.Equal(t, "Rival", resp.Rows[2].Who)
}

func TestRetentionUnavailableWithoutOAuth(t *testing.T) {
	srv, _ := testServer(t, nil)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/retention",
		retentionRequest{Video: "abc"}, licensed())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRetentionOwnershipEnforced(t *testing.T) {
	srv, _ := testServer(t, &stubRetention{myChannel: "UCother"})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/retention",
		retentionRequest{Video: "abc"}, licensed())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRetentionHappyPath(t *testing.T) {
	curve := []domain.RetentionPoint{
		{ElapsedRatio: 0.0, WatchRatio: 1.0},
		{ElapsedRatio: 0.25, WatchRatio: 0.6},
		{ElapsedRatio: 0.5, WatchRatio: 0.55},
		{ElapsedRatio: 0.75, WatchRatio: 0.3},
	}

	srv, _ := testServer(t, &stubRetention{myChannel: "UCstub", curve: curve})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/retention",
		retentionRequest{Video: "https://youtu.be/abc123"}, licensed())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp retentionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc123", resp.VideoID)
	assert.Equal(t, 120, resp.DurationSecs)
	require.NotEmpty(t, resp.Insights)
	assert.Equal(t, len(resp.Insights), len(resp.Lines))
}

func TestRetentionNoData(t *testing.T) {
	srv, _ := testServer(t, &stubRetention{myChannel: "UCstub", curveErr: coreerrors.ErrNoRetentionData})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/retention",
		retentionRequest{Video: "abc"}, licensed())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideoIdeas(t *testing.T) {
	srv, _ := testServer(t, nil)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/ideas/videos",
		videoIdeasRequest{Channel: "@stub", Count: 6}, licensed())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp videoIdeasResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UCstub", resp.ChannelID)
	assert.NotEmpty(t, resp.Seeds)
	assert.Len(t, resp.Titles, 6)
}

func TestThumbnailIdeas(t *testing.T) {
	srv, _ := testServer(t, nil)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/ideas/thumbnails",
		thumbnailIdeasRequest{Hint: "outreach"}, licensed())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp thumbnailIdeasResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Concepts, 10)
}

func TestReportPDF(t *testing.T) {
	srv, _ := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/report/pdf?channel=%40stub&videos=3", nil)
	req.Header.Set(licenseHeader, "VALID-KEY")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "YouTube_Audit_")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestAdminLicenseCRUD(t *testing.T) {
	srv, licenses := testServer(t, nil)
	router := srv.Router()

	// No credentials.
	rec := doJSON(t, router, http.MethodPost, "/api/admin/licenses/", addLicenseRequest{Key: "NEW"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	auth := func(req *http.Request) {
		req.SetBasicAuth("admin", "hunter2")
	}

	// Add.
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(addLicenseRequest{Key: "NEW-KEY", Note: "trial"}))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/licenses/", &buf)
	auth(req)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, licenses.Has("NEW-KEY"))

	// List.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/licenses/", nil)
	auth(req)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NEW-KEY")

	// Delete.
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/licenses/NEW-KEY", nil)
	auth(req)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, licenses.Has("NEW-KEY"))

	// Delete again is a 404.
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/licenses/NEW-KEY", nil)
	auth(req)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	srv, _ := testServer(t, nil)
	srv.cfg.APIRateLimitRPS = 1
	srv.cfg.APIRateLimitBurst = 1
	router := srv.Router()

	first := doJSON(t, router, http.MethodPost, "/api/ideas/thumbnails", thumbnailIdeasRequest{}, licensed())
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, router, http.MethodPost, "/api/ideas/thumbnails", thumbnailIdeasRequest{}, licensed())
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
