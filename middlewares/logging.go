package middlewares

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/anvil/internal"
)

// LoggingConfig configures the logging middleware.
type LoggingConfig struct {
	SkipPaths []string // exact request paths excluded from the access log
}

// LoggingOption configures LoggingConfig.
type LoggingOption func(*LoggingConfig)

// WithLoggingSkipPaths excludes exact request paths from the access log.
// Health and metrics endpoints polled by infrastructure are the usual
// candidates.
func WithLoggingSkipPaths(paths ...string) LoggingOption {
	return func(cfg *LoggingConfig) {
		cfg.SkipPaths = append(cfg.SkipPaths, paths...)
	}
}

// Logging returns middleware that writes one access log line per request
// through the request-scoped logger, so context extractors such as
// [RequestIDExtractor] annotate every line. The log level follows the
// response class: Info below 400, Warn for 4xx, Error for 5xx.
//
// Place it outside Recover so panics still produce an access line with the
// 500 status the client received.
func Logging(opts ...LoggingOption) internal.Middleware {
	cfg := &LoggingConfig{}

	for _, opt := range opts {
		opt(cfg)
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if _, ok := skip[r.URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := loggedStatus(c, err)
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", loggedBytes(c),
				"duration", time.Since(start),
				"ip", r.RemoteAddr,
			}
			if pattern := internal.RoutePattern(c); pattern != "" {
				attrs = append(attrs, "route", pattern)
			}

			switch {
			case status >= http.StatusInternalServerError:
				c.LogError("request", attrs...)
			case status >= http.StatusBadRequest:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}

			return err
		}
	}
}

// loggedStatus resolves the status the client will receive. Errors are
// rendered after the middleware chain unwinds, so when nothing has been
// written yet the status comes from the returned error instead of the
// response writer.
func loggedStatus(c internal.Context, err error) int {
	if rw := c.ResponseWriter(); rw != nil && rw.Written() {
		return rw.Status()
	}
	if err == nil {
		return http.StatusOK
	}
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

func loggedBytes(c internal.Context) int64 {
	if rw := c.ResponseWriter(); rw != nil {
		return rw.Size()
	}
	return 0
}
