package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AuditsRun = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_runs_total",
		Help: "The total number of channel audits run",
	}, []string{"status"})

	AuditDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "audit_run_duration_seconds",
		Help:    "Duration of a full channel audit including fetches",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	})

	AuditBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "audit_batch_size",
		Help:    "Number of videos in an audited batch",
		Buckets: []float64{1, 3, 5, 10, 20, 30, 40},
	})

	YouTubeAPICalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_youtube_api_calls_total",
		Help: "Total YouTube Data API calls by endpoint and status",
	}, []string{"endpoint", "status"})

	YouTubeAPIDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "audit_youtube_api_duration_seconds",
		Help:    "Duration of YouTube Data API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	RetentionQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_retention_queries_total",
		Help: "Total analytics retention queries by status",
	}, []string{"status"})

	ComparisonsRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_comparisons_total",
		Help: "Total channel comparisons run",
	})

	ReportsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_reports_rendered_total",
		Help: "Total PDF reports rendered by status",
	}, []string{"status"})

	LicenseChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_license_checks_total",
		Help: "Total license activations checked by result",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "audit_http_request_duration_seconds",
		Help:    "Duration of API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)
