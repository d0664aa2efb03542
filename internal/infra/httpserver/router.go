package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/dhnext/launchpad/internal/domain/compliance"
	"github.com/dhnext/launchpad/internal/domain/workspace"
	"github.com/dhnext/launchpad/internal/middleware"
)

// ComplianceChecker runs one compliance check; failures come back inside the result
type ComplianceChecker interface {
	RunComplianceCheck(ctx context.Context, tenant, pageURL string) compliance.Result
}

// Workspace stores the tenant's link and serves the panel's initial data
type Workspace interface {
	SaveLink(ctx context.Context, tenant, link string) error
	InitialData(ctx context.Context, tenant string) (workspace.InitialData, error)
}

// Options holds the cross-cutting pieces the router mounts
type Options struct {
	Strategy       compliance.Strategy
	AllowedOrigins []string
	APIKeys        map[string]string
	RateLimiter    *middleware.RateLimiter
	Metrics        *middleware.Metrics
	HealthCheckers map[string]middleware.HealthChecker
}

type Router struct {
	checker   ComplianceChecker
	workspace Workspace
	strategy  compliance.Strategy
	metrics   *middleware.Metrics
}

func NewRouter(checker ComplianceChecker, ws Workspace, opts Options) http.Handler {
	r := &Router{checker: checker, workspace: ws, strategy: opts.Strategy, metrics: opts.Metrics}
	if r.metrics == nil {
		r.metrics = middleware.NewMetrics()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	mux.Use(r.metrics.Middleware)
	mux.Use(middleware.APIKeyAuth(opts.APIKeys))

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Handle("/metrics", r.metrics.Handler())

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Use(middleware.RequireValidTenant)
		if opts.RateLimiter != nil {
			rt.Use(middleware.RateLimitMiddleware(opts.RateLimiter, r.metrics))
		}

		rt.Post("/compliance/check", r.wrap(r.handleComplianceCheck))
		rt.Post("/confluence-link", r.wrap(r.handleSaveLink))
		rt.Get("/initial-data", r.wrap(r.handleInitialData))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status, body := statusFor(err)
			if status >= http.StatusInternalServerError {
				log.Error().Err(err).
					Str("request_id", middleware.GetRequestID(req.Context())).
					Str("path", req.URL.Path).
					Msg("request failed")
			}
			writeJSON(w, status, body)
		}
	}
}
