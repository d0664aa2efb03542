package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func tenantRouter(mw ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/v1/{tenant}", func(r chi.Router) {
		r.Use(mw...)
		r.Get("/initial-data", okHandler)
	})
	r.Get("/health", okHandler)
	return r
}

func TestValidateTenantID(t *testing.T) {
	assert.NoError(t, ValidateTenantID("acme_01-prod"))
	assert.Error(t, ValidateTenantID(""))
	assert.Error(t, ValidateTenantID("acme corp"))
	assert.Error(t, ValidateTenantID(strings.Repeat("a", 65)))
}

func TestValidatePageURL(t *testing.T) {
	assert.ErrorIs(t, ValidatePageURL(""), ErrEmptyPageURL)
	assert.Error(t, ValidatePageURL(strings.Repeat("x", maxURLLength+1)))
	assert.NoError(t, ValidatePageURL("not-a-confluence-url"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "https://a/b", SanitizeString("  https://a/\x00b\x07 "))
	assert.Equal(t, "line1\nline2", SanitizeString("line1\nline2\x1b"))
}

func TestAPIKeyAuth(t *testing.T) {
	h := APIKeyAuth(map[string]string{"acme": "k-acme", "globex": "k-globex"})(tenantRouter(RequireValidTenant))

	tests := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"missing header", "/v1/acme/initial-data", "", http.StatusUnauthorized},
		{"wrong key", "/v1/acme/initial-data", "Bearer nope", http.StatusUnauthorized},
		{"bearer key", "/v1/acme/initial-data", "Bearer k-acme", http.StatusOK},
		{"raw key", "/v1/acme/initial-data", "k-acme", http.StatusOK},
		{"other tenant's key", "/v1/acme/initial-data", "Bearer k-globex", http.StatusForbidden},
		{"health is public", "/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAPIKeyAuth_DisabledWithoutKeys(t *testing.T) {
	h := APIKeyAuth(nil)(tenantRouter(RequireValidTenant))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/acme/initial-data", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireValidTenant_BadTenant(t *testing.T) {
	h := tenantRouter(RequireValidTenant)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/bad.tenant/initial-data", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	h := tenantRouter(RateLimitMiddleware(limiter, NewMetrics()))

	send := func(tenant, ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/"+tenant+"/initial-data", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("acme", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("acme", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("acme", "10.0.0.1"))

	assert.Equal(t, http.StatusOK, send("globex", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("acme", "10.0.0.2"))
	assert.Equal(t, 3, limiter.Len())
}

func TestRateLimiter_SweepsIdleKeys(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(10, 10)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	limiter.Allow("a")
	now = now.Add(limiterIdleTTL + limiterSweepEach)
	limiter.Allow("b")

	assert.Equal(t, 1, limiter.Len())
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestLoggingMiddleware_CapturesStatus(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "hi", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/v1/{tenant}/initial-data", okHandler)
	r.Handle("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/acme/initial-data", nil))
	m.ObserveCheck("keyword", "success")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `launchpad_http_requests_total{method="GET",route="/v1/{tenant}/initial-data",status="200"} 1`)
	assert.Contains(t, body, `launchpad_compliance_checks_total{status="success",strategy="keyword"} 1`)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"store": StoreHealthChecker{Store: fakePinger{}}})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"store": StoreHealthChecker{Store: fakePinger{err: errors.New("down")}}})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "down")
}
