package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/anvil/pkg/binder"
)

// ValidationErrors is a collection of validation errors keyed by field name.
type ValidationErrors = binder.ValidationErrors

// JWTClaimsKey is the context key used to store parsed JWT claims.
type JWTClaimsKey struct{}

// routeParamsKey is the context key the router uses to attach captured path
// segments to the request.
type routeParamsKey struct{}

// routePatternKey is the context key the router uses to record which pattern
// matched the request.
type routePatternKey struct{}

// Context is the per-request view handlers and middleware work against. It
// bundles request access, response writes, typed helpers, and logging, and
// doubles as a context.Context by delegating to the request's context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the named path segment captured by the route pattern,
	// URL-decoded. Empty string when the route has no such placeholder.
	Param(name string) string

	// Query returns the query parameter value, empty string when absent.
	Query(name string) string

	// QueryDefault returns the query parameter value, or defaultValue when
	// the parameter is absent or blank.
	QueryDefault(name, defaultValue string) string

	// Form returns the form field value, parsing the body on first access.
	// Empty string when the field is absent.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes the status code with no body.
	NoContent(code int) error

	// Redirect sends a redirect to url with the given status code.
	Redirect(code int, url string) error

	// Error builds an HTTPError without writing anything. Return it from
	// the handler to have the boundary render it.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Bind decodes form data into v and validates it. Validation failures
	// come back in the first return, system failures in the second.
	Bind(v any) (ValidationErrors, error)

	// BindQuery decodes query parameters into v and validates it.
	BindQuery(v any) (ValidationErrors, error)

	// BindJSON decodes the JSON body into v and validates it.
	BindJSON(v any) (ValidationErrors, error)

	// Written reports whether any response bytes or status left already.
	Written() bool

	// Logger returns the request logger for advanced usage.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context, visible to Get and to
	// plain ctx.Value lookups downstream.
	Set(key any, value any)

	// Get retrieves a value stored with Set, nil when the key is unknown.
	Get(key any) any

	// Cookie returns a cookie value, or http.ErrNoCookie when absent.
	Cookie(name string) (string, error)

	// SetCookie sets a host-wide HttpOnly cookie.
	SetCookie(name, value string, maxAge int)

	// DeleteCookie instructs the client to drop a cookie.
	DeleteCookie(name string)

	// ResponseWriter returns the wrapped writer for advanced usage, nil
	// when the response is not wrapped.
	ResponseWriter() *ResponseWriter
}

// requestContext is the Context implementation behind every real request.
type requestContext struct {
	// mu guards request. The timeout middleware leaves its handler
	// goroutine running after the deadline fires, and that goroutine may
	// still call Set (which rebinds the pointer) while the unwinding chain
	// reads it.
	mu             sync.RWMutex
	request        *http.Request
	response       http.ResponseWriter
	responseWriter *ResponseWriter
	logger         *slog.Logger
}

// newContext wraps the writer once so Written and seal observe every byte
// handlers produce.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw := NewResponseWriter(w)
	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
	}
}

// req is the single read path for the guarded request pointer.
func (c *requestContext) req() *http.Request {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.request
}

func (c *requestContext) Request() *http.Request        { return c.req() }
func (c *requestContext) Response() http.ResponseWriter { return c.response }
func (c *requestContext) Context() context.Context      { return c.req().Context() }

// Delegating these four makes a Context usable anywhere a context.Context is.

func (c *requestContext) Deadline() (time.Time, bool) { return c.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.Context().Done() }
func (c *requestContext) Err() error                  { return c.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.Context().Value(key) }

// routeParams returns the captured path segments, nil before dispatch.
func (c *requestContext) routeParams() map[string]string {
	params, _ := c.Get(routeParamsKey{}).(map[string]string)
	return params
}

func (c *requestContext) Param(name string) string {
	return c.routeParams()[name]
}

func (c *requestContext) Query(name string) string {
	return c.req().URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.req().FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.req().Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.SetHeader("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.SetHeader("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.req(), url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Bind(v any) (ValidationErrors, error) {
	return binder.BindForm(c.req(), v)
}

func (c *requestContext) BindQuery(v any) (ValidationErrors, error) {
	return binder.BindQuery(c.req(), v)
}

func (c *requestContext) BindJSON(v any) (ValidationErrors, error) {
	return binder.BindJSON(c.req(), v)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.Context(), msg, attrs...)
}

// Set rebinds the request to a context carrying the value, so Get and plain
// ctx.Value lookups both observe it downstream.
func (c *requestContext) Set(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.req().Context().Value(key)
}

func (c *requestContext) Cookie(name string) (string, error) {
	cookie, err := c.req().Cookie(name)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// writeCookie is the shared shape behind SetCookie and DeleteCookie:
// host-wide path, HttpOnly, Lax. MaxAge -1 instructs removal.
func (c *requestContext) writeCookie(name, value string, maxAge int) {
	http.SetCookie(c.response, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *requestContext) SetCookie(name, value string, maxAge int) {
	c.writeCookie(name, value, maxAge)
}

func (c *requestContext) DeleteCookie(name string) {
	c.writeCookie(name, "", -1)
}
