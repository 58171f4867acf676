package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/anvil/pkg/health"
	"github.com/dmitrymomot/anvil/pkg/logger"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	routes                  *routeTable
	chain                   HandlerFunc
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// The App is immutable after creation: the route table and the middleware
// chain are both assembled here, once, and only read afterwards.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithMiddleware(middlewares.Logging()),
//	    anvil.WithHandlers(
//	        handlers.NewProducts(crud),
//	        handlers.NewCategories(crud),
//	    ),
//	)
func New(opts ...Option) *App {
	a := &App{
		routes: newRouteTable(),
		logger: logger.NewNope(), // Default: noop logger (before options)
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()

	// Fold global middleware around dispatch so the chain shape is fixed
	// before the first request. Dispatch is always the terminal stage.
	a.chain = applyMiddleware(a.routes.dispatch, a.middlewares)

	return a
}

// ServeHTTP runs the precomputed middleware chain for one request.
// An error reaching this boundary is converted to a response exactly once;
// by then every middleware above the error's origin has already unwound, so
// none of them can observe or rewrite the rendered error. The writer is
// sealed afterwards, cutting off goroutines the timeout middleware abandoned.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := newContext(w, r, a)
	if err := a.chain(c); err != nil {
		a.handleError(c, err)
	}
	c.responseWriter.seal()
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithHandlers(handlers.NewProducts(crud)),
//	)
//	err := app.Run(":8080", anvil.Logger(slog))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes builds the route table from health endpoints, static mounts,
// and registered handlers.
func (a *App) setupRoutes() {
	a.routes.notFound = a.notFoundHandler
	a.routes.methodNotAllowed = a.methodNotAllowedHandler

	if a.healthConfig != nil {
		a.routes.register(http.MethodGet, a.healthConfig.livenessPath,
			wrapHTTPHandler(health.LivenessHandler()))
		a.routes.register(http.MethodGet, a.healthConfig.readinessPath,
			wrapHTTPHandler(health.ReadinessHandler(a.healthConfig.checks)))
	}

	for _, sr := range a.staticRoutes {
		a.routes.mount(sr.pattern, sr.handler)
	}

	r := &routerScope{app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHTTPHandler adapts a plain http.Handler to a HandlerFunc.
func wrapHTTPHandler(h http.Handler) HandlerFunc {
	return func(c Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

// handleError converts an error that escaped the chain into a response.
// If something was already written the error is dropped: the response is on
// the wire and cannot be replaced.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr == nil {
			return
		}
	}
	a.renderError(c, err)
}

// errorEnvelope is the JSON body every HTTP-level failure renders to,
// regardless of where the error originated.
type errorEnvelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// renderError writes the structured error response. Non-HTTP errors are
// unexpected conditions: they are logged with their cause and surface as an
// opaque 500 so engine or handler internals never leak to clients.
func (a *App) renderError(c Context, err error) {
	if c.Written() {
		return
	}

	httpErr := AsHTTPError(err)
	if httpErr == nil {
		a.logger.ErrorContext(c.Context(), "unhandled error",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.String("error", err.Error()),
		)
		httpErr = ErrInternal("internal server error", WithError(err))
	} else if httpErr.Code >= http.StatusInternalServerError && httpErr.Err != nil {
		a.logger.ErrorContext(c.Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", httpErr.Code),
			slog.String("error", httpErr.Err.Error()),
		)
	}

	for k, v := range httpErr.Headers {
		c.SetHeader(k, v)
	}

	_ = c.JSON(httpErr.Code, errorEnvelope{
		Status:  "error",
		Code:    httpErr.Code,
		Message: httpErr.Message,
	})
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	anvil.WithReadinessCheck("db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
