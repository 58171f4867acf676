package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/anvil/internal"
)

// DefaultTimeout applies when Timeout is given a zero or negative duration.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig holds the per-request deadline.
type TimeoutConfig struct {
	Timeout time.Duration
}

// TimeoutOption adjusts a TimeoutConfig before the middleware is built.
type TimeoutOption func(*TimeoutConfig)

// timeoutContextKey stores the deadline context for handlers to observe.
type timeoutContextKey struct{}

// Timeout returns middleware that enforces a per-request deadline.
// On expiry the client receives a 504 wrapping a [TimeoutError] while the
// handler goroutine keeps running; once the app finishes the request its
// response writer is sealed, so anything that goroutine writes afterwards
// is dropped. Long-running handlers should watch [GetTimeoutContext] to
// stop early.
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := TimeoutConfig{Timeout: timeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), cfg.Timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", cfg.Timeout.String())
					return internal.NewHTTPError(
						http.StatusGatewayTimeout,
						"request timeout",
						internal.WithError(&TimeoutError{Duration: cfg.Timeout}),
					)
				}
				return ctx.Err()
			}
		}
	}
}

// GetTimeoutContext retrieves the deadline context installed by Timeout.
// Handlers doing slow work select on its Done channel to notice expiry.
// Without the middleware it falls back to the request context.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
