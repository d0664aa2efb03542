package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepEach = 5 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages rate limits per tenant + client IP
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rps:       rate.Limit(requestsPerSecond),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	entry, ok := rl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than limiterIdleTTL. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < limiterSweepEach {
		return
	}
	for key, e := range rl.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, key)
		}
	}
	rl.lastSweep = now
}

// Len reports how many keys are tracked
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// RateLimitMiddleware creates a rate limiting middleware keyed by {tenant} and client IP.
// metrics may be nil.
func RateLimitMiddleware(limiter *RateLimiter, metrics *Metrics) func(http.Handler) http.Handler {
	retryAfter := "1"
	if limiter.rps > 0 && limiter.rps < 1 {
		retryAfter = strconv.Itoa(int(1/float64(limiter.rps)) + 1)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := chi.URLParam(r, "tenant") + ":" + clientIP(r)

			if !limiter.Allow(key) {
				metrics.observeRateLimited()
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, "rate limit exceeded, please try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
