package anvil

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/health"
	"github.com/dmitrymomot/anvil/pkg/logger"
)

// Aliases lifting the internal types into the public API.
type (
	// App is the assembled application: router, middleware chain, and
	// server lifecycle in one value.
	App = internal.App

	// Router is what a Handler's Routes method receives to declare routes.
	Router = internal.Router

	// Context carries one request through the middleware chain and
	// handlers.
	Context = internal.Context

	// Handler groups related routes behind one Routes method.
	Handler = internal.Handler

	// HandlerFunc serves one request; a non-nil return becomes a response
	// at the outer boundary.
	HandlerFunc = internal.HandlerFunc

	// Middleware decorates a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler turns a handler error into a response.
	ErrorHandler = internal.ErrorHandler

	// Option shapes the App while New assembles it.
	Option = internal.Option

	// RunOption tunes a single Run call.
	RunOption = internal.RunOption

	// HealthOption configures the health endpoints mounted by
	// WithHealthChecks.
	HealthOption = internal.HealthOption

	// ValidationErrors maps field names to human-readable binding failures.
	ValidationErrors = internal.ValidationErrors

	// HTTPError is the error type the framework renders as a JSON envelope.
	HTTPError = internal.HTTPError

	// HTTPErrorOption decorates an HTTPError under construction.
	HTTPErrorOption = internal.HTTPErrorOption

	// Registry maps string keys to handlers for declarative route tables.
	Registry = internal.Registry

	// Extractor pulls a string value from a request through an ordered
	// source list.
	Extractor = internal.Extractor

	// ExtractorSource is a single value source for an Extractor.
	ExtractorSource = internal.ExtractorSource

	// ResponseWriter wraps http.ResponseWriter with status and size capture.
	ResponseWriter = internal.ResponseWriter

	// ContextExtractor pulls a request-scoped slog attribute out of a
	// context, for use with WithLogger.
	ContextExtractor = logger.ContextExtractor
)

// New assembles an App from the given options. The App is immutable
// afterwards; everything it serves was declared here.
//
// Example:
//
//	app := anvil.New(
//	    anvil.WithMiddleware(middlewares.RequestID(), middlewares.Logging()),
//	    anvil.WithHandlers(
//	        handlers.NewProducts(crud),
//	        handlers.NewCategories(crud),
//	    ),
//	)
//
//	err := app.Run(":8080", anvil.Logger(slog))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// NewExtractor builds an extractor that tries sources in order and returns
// the first value found.
//
// Example:
//
//	ext := anvil.NewExtractor(
//	    anvil.FromHeader("Authorization"),
//	    anvil.FromQuery("token"),
//	)
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided: the first entry sees the
// request first and the response last.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup, in order, so route
// precedence follows registration order across handlers too.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles serves files from an embedded filesystem under pattern.
// Directory listings 404.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	anvil.New(
//	    anvil.WithStaticFiles("/static", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithMount attaches a plain http.Handler at the given prefix. Mounted
// handlers are consulted only when no registered route pattern matches.
//
// Example:
//
//	anvil.WithMount("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}))
func WithMount(pattern string, h http.Handler) Option {
	return internal.WithMount(pattern, h)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error. Returning a non-nil error
// from the custom handler falls back to the default JSON error envelope.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler. The Allow header
// listing the verbs the matched pattern supports is set before the handler
// runs.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks mounts liveness and readiness endpoints. Liveness
// (/health/live) answers OK whenever the process is up; readiness
// (/health/ready) runs the configured checks and reports 503 on failure.
//
// Example:
//
//	anvil.WithHealthChecks(
//	    anvil.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger builds the app logger with a component attribute on every
// record and optional extractors for request-scoped values such as the
// request ID.
//
// Example:
//
//	anvil.New(
//	    anvil.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger installs an already-built logger, bypassing the
// component and extractor wiring of WithLogger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Health check options

// WithLivenessPath moves the liveness endpoint from "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath moves the readiness endpoint from "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named check to the readiness probe.
// Checks run concurrently on every probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the logger Run uses for startup and shutdown messages.
// Left unset, they stay silent.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout caps how long draining requests and shutdown hooks may
// take together. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function to run before the server starts
// accepting requests. Hooks run in registration order; a hook error aborts
// startup.
//
// Example:
//
//	anvil.StartupHook(func(ctx context.Context) error {
//	    return db.Migrate(ctx, pool, migrations, "schema_migrations", log)
//	})
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers cleanup to run after the listener stops, in
// registration order, under the shutdown deadline.
//
// Example:
//
//	anvil.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext roots signal handling in ctx instead of context.Background,
// letting callers stop the server by cancelling their own context.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Request helpers

// RoutePattern returns the route pattern that matched the current request,
// for example "/products/{id}". It is empty when no pattern matched.
func RoutePattern(c Context) string {
	return internal.RoutePattern(c)
}

// ContextValue reads a typed value off the context, returning T's zero
// value when the key is absent or holds a different type.
//
// Example:
//
//	type tenantKey struct{}
//
//	tenant := anvil.ContextValue[string](c, tenantKey{})
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a route parameter converted to T, or T's zero value when the
// parameter is missing or does not parse.
//
// Example:
//
//	id := anvil.Param[int64](c, "id")
func Param[T string | int | int64 | float64 | bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a query parameter converted to T, or T's zero value when the
// parameter is missing or does not parse.
func Query[T string | int | int64 | float64 | bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a query parameter converted to T, falling back to
// defaultValue when the parameter is empty or does not parse.
//
// Example:
//
//	page := anvil.QueryDefault(c, "page", 1)
func QueryDefault[T string | int | int64 | float64 | bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault[T](c, name, defaultValue)
}

// Extractor sources

// FromHeader extracts a value from the named request header.
func FromHeader(name string) ExtractorSource {
	return internal.FromHeader(name)
}

// FromQuery extracts a value from the named query parameter.
func FromQuery(name string) ExtractorSource {
	return internal.FromQuery(name)
}

// FromCookie extracts a value from the named cookie.
func FromCookie(name string) ExtractorSource {
	return internal.FromCookie(name)
}

// FromParam extracts a value from the named route parameter.
func FromParam(name string) ExtractorSource {
	return internal.FromParam(name)
}

// FromForm extracts a value from the named form field.
func FromForm(name string) ExtractorSource {
	return internal.FromForm(name)
}

// FromBearerToken extracts the token from an Authorization: Bearer header.
func FromBearerToken() ExtractorSource {
	return internal.FromBearerToken()
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
// The app converts it into the JSON error envelope at the outer boundary of
// the middleware chain.
//
// Example:
//
//	return anvil.NewHTTPError(http.StatusPaymentRequired, "trial expired")
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches an underlying cause for logging. The cause is never
// exposed to clients.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithHeader attaches an extra response header to the rendered error,
// e.g. Allow for 405 or Retry-After for 429.
func WithHeader(key, value string) HTTPErrorOption {
	return internal.WithHeader(key, value)
}

// Shorthand constructors for the statuses handlers return most.

// ErrBadRequest builds a 400 error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrUnauthorized builds a 401 error.
func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrForbidden builds a 403 error.
func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

// ErrNotFound builds a 404 error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrMethodNotAllowed builds a 405 error; pass WithHeader("Allow", ...) so
// clients learn which verbs the path supports.
func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrMethodNotAllowed(message, opts...)
}

// ErrConflict builds a 409 error.
func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

// ErrUnprocessable builds a 422 error.
func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

// ErrTooManyRequests builds a 429 error.
func ErrTooManyRequests(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrTooManyRequests(message, opts...)
}

// ErrInternal builds a 500 error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrServiceUnavailable builds a 503 error.
func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}

// IsHTTPError reports whether err has an HTTPError anywhere in its chain.
func IsHTTPError(err error) bool {
	return internal.IsHTTPError(err)
}

// AsHTTPError digs an HTTPError out of err's chain, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}
