package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency. Implementations usually close over a pool
// or client, like the pool ping returned by db.Healthcheck.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to their probe functions.
type Checks map[string]CheckFunc

// Response is the aggregated result of a health run.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check reports the outcome of a single health check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures health check behavior.
type Option func(*config)

// WithTimeout sets the deadline shared by all checks in a run.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed-check warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Healthy runs all checks and returns nil when every one passes. On failure
// it returns ErrCheckFailed joined with each failing check's error, which
// suits healthcheck commands that only need an exit code.
func Healthy(ctx context.Context, checks Checks, opts ...Option) error {
	resp := checks.run(ctx, newConfig(opts...))
	if resp.Status == StatusHealthy {
		return nil
	}

	errs := []error{ErrCheckFailed}
	for name, check := range resp.Checks {
		if check.Error != "" {
			errs = append(errs, fmt.Errorf("%s: %s", name, check.Error))
		}
	}
	return errors.Join(errs...)
}

// run probes every check in parallel under one shared deadline and
// aggregates the outcomes. No checks counts as healthy.
func (cs Checks) run(ctx context.Context, cfg *config) *Response {
	if len(cs) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]Check, len(cs))
	)
	for name, fn := range cs {
		wg.Go(func() {
			res := probe(ctx, name, fn, cfg.logger)
			mu.Lock()
			results[name] = res
			mu.Unlock()
		})
	}
	wg.Wait()

	resp := &Response{Status: StatusHealthy, Checks: results}
	for _, res := range results {
		if res.Status == StatusUnhealthy {
			resp.Status = StatusUnhealthy
			break
		}
	}
	return resp
}

// probe runs one check, folding a deadline hit into ErrCheckTimeout so the
// report distinguishes slow dependencies from broken ones.
func probe(ctx context.Context, name string, fn CheckFunc, logger *slog.Logger) Check {
	err := fn(ctx)
	if err == nil {
		return Check{Status: StatusHealthy}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = ErrCheckTimeout
	}
	logger.WarnContext(ctx, "health check failed",
		slog.String("check", name),
		slog.String("error", err.Error()),
	)
	return Check{Status: StatusUnhealthy, Error: err.Error()}
}
