// ABOUTME: HTTP server struct, constructor, and handler wiring for the Yi Connect
// ABOUTME: authorization service. The policy API is registered through huma.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/JKKN-Institutions/yi-connect-sub010/internal/authz"
	"github.com/JKKN-Institutions/yi-connect-sub010/internal/config"
)

// Server holds the dependencies for the HTTP layer.
type Server struct {
	cfg         *config.Config
	rateLimiter *ipRateLimiter
}

// NewServer creates a Server. The policy tables are verified once here so a
// binary with an inconsistent grant table never starts serving decisions.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := authz.Verify(); err != nil {
		return nil, err
	}
	evictTTL := cfg.RateLimitEvictTTL
	if evictTTL == 0 {
		evictTTL = 15 * time.Minute
	}
	// 60 requests per minute, burst of 30 — the check endpoint is called by
	// services, not browsers, so the ceiling is higher than a login limiter.
	rl := newIPRateLimiter(rate.Limit(60.0/60), 30, evictTTL)
	return &Server{
		cfg:         cfg,
		rateLimiter: rl,
	}, nil
}

// Handler builds and returns the http.Handler.
func (srv *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Security headers first so they appear on every response including errors.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			next.ServeHTTP(w, r)
		})
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	// 64 KB global body limit — decision requests are tiny.
	r.Use(middleware.RequestSize(64 << 10))
	r.Use(middleware.Recoverer)

	// ── Infrastructure endpoints ──────────────────────────────────────────────
	r.Get("/healthz", healthzHandler)
	r.Handle("/metrics", promhttp.Handler())

	// ── API v1 sub-router with huma (OpenAPI 3.1) ────────────────────────────
	apiRouter := chi.NewRouter()
	apiRouter.Use(srv.checkRateLimit())
	humaConfig := huma.DefaultConfig("Yi Connect Authorization API", "1.0.0")
	humaConfig.Info.Description = "Policy decisions and introspection for the Yi Connect chapter platform"
	api := humachi.New(apiRouter, humaConfig)
	registerAuthzRoutes(api)

	r.Mount("/api/v1", apiRouter)
	return r
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
