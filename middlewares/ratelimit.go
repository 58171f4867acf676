package middlewares

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/cache"
)

const (
	// DefaultRateLimitRPS is the sustained request rate per client.
	DefaultRateLimitRPS = 10

	// DefaultRateLimitBurst is the burst size per client.
	DefaultRateLimitBurst = 20

	// DefaultRateLimitTTL is how long an idle client's limiter is kept.
	// Each request slides the expiry forward, so only clients that stop
	// sending traffic are evicted.
	DefaultRateLimitTTL = 3 * time.Minute
)

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	KeyFunc    func(c internal.Context) string // client identity; defaults to IP
	TTL        time.Duration                   // idle eviction for per-client limiters
	TrustProxy bool                            // honor X-Real-IP / X-Forwarded-For
}

// RateLimitOption configures RateLimitConfig.
type RateLimitOption func(*RateLimitConfig)

// WithRateLimitTrustProxy makes the middleware read the client IP from
// X-Real-IP and X-Forwarded-For. Enable only behind a proxy that sets
// them; the headers are client-controlled otherwise.
func WithRateLimitTrustProxy() RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.TrustProxy = true
	}
}

// WithRateLimitKeyFunc replaces IP-based client identity, e.g. keying by
// API token or authenticated user. An empty key skips limiting for that
// request.
func WithRateLimitKeyFunc(fn func(c internal.Context) string) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.KeyFunc = fn
	}
}

// WithRateLimitTTL sets how long idle per-client limiters are retained.
func WithRateLimitTTL(ttl time.Duration) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		cfg.TTL = ttl
	}
}

// RateLimit returns middleware enforcing a token bucket per client: rps
// tokens per second sustained, bursts up to burst. Limiters live in an
// in-memory cache with a sliding idle TTL, so the per-client state does
// not grow without bound. Rejected requests get a 429 with Retry-After.
//
// Non-positive rps or burst fall back to the package defaults.
func RateLimit(rps float64, burst int, opts ...RateLimitOption) internal.Middleware {
	cfg := &RateLimitConfig{
		TTL: DefaultRateLimitTTL,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if rps <= 0 {
		rps = DefaultRateLimitRPS
	}
	if burst <= 0 {
		burst = DefaultRateLimitBurst
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultRateLimitTTL
	}

	limiters := cache.NewMemory[*rate.Limiter](cache.WithDefaultTTL(cfg.TTL))

	// The cache deduplicates misses through a process-wide group, so keys
	// carry an instance prefix to keep separate RateLimit instances from
	// ever sharing a limiter.
	prefix := uuid.NewString() + ":"

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key := clientIP(c.Request(), cfg.TrustProxy)
			if cfg.KeyFunc != nil {
				key = cfg.KeyFunc(c)
			}
			if key == "" {
				return next(c)
			}
			cacheKey := prefix + key

			lim, err := cache.GetOrSet(c.Context(), limiters, cacheKey,
				func(context.Context) (*rate.Limiter, time.Duration, error) {
					return rate.NewLimiter(rate.Limit(rps), burst), 0, nil
				})
			if err != nil {
				// Fail open: limiter state trouble must not take down traffic.
				c.LogError("rate limiter unavailable", "error", err)
				return next(c)
			}

			// Slide the idle window so active clients keep their bucket.
			_ = limiters.Set(c.Context(), cacheKey, lim, 0)

			if !lim.Allow() {
				c.LogWarn("rate limit exceeded",
					"ip", key,
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)
				return internal.ErrTooManyRequests("too many requests",
					internal.WithHeader("Retry-After", "1"))
			}

			return next(c)
		}
	}
}

// clientIP resolves the client address for rate limit keying. With
// trustProxy it prefers X-Real-IP, then the first X-Forwarded-For entry,
// validating each as an IP; the fallback is always the connection's
// remote address.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" && net.ParseIP(ip) != nil {
			return ip
		}
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := strings.TrimSpace(strings.Split(xff, ",")[0])
			if net.ParseIP(first) != nil {
				return first
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
