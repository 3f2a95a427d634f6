package server

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/charliesmith-boop/youtube-audit/internal/platform/observability"
)

const licenseHeader = "X-License-Key"

// requireLicense gates the audit surfaces on a stored license key.
func (s *Server) requireLicense(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(licenseHeader)
		if key == "" || !s.licenses.Has(key) {
			observability.LicenseChecks.WithLabelValues("denied").Inc()
			writeError(w, http.StatusUnauthorized, "valid license key required")

			return
		}

		observability.LicenseChecks.WithLabelValues("ok").Inc()
		next.ServeHTTP(w, r)
	})
}

// requireAdmin gates license administration on the configured admin
// password, supplied as HTTP basic auth.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminPassword == "" {
			writeError(w, http.StatusForbidden, "admin surface disabled")

			return
		}

		_, password, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
			writeError(w, http.StatusUnauthorized, "admin authorization required")

			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimit applies a per-IP token bucket across the whole API.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.allowRequest(r.RemoteAddr) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowRequest(ip string) bool {
	s.limitersMu.Lock()

	limiter, ok := s.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.APIRateLimitRPS), s.cfg.APIRateLimitBurst)
		s.limiters[ip] = limiter
	}

	s.limitersMu.Unlock()

	return limiter.Allow()
}

// observe records request durations per route pattern and status.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}

		observability.HTTPRequestDuration.
			WithLabelValues(pattern, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
