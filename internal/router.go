package internal

import (
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Router is the interface handlers use to declare routes.
// It provides HTTP method routing and grouping capabilities.
type Router interface {
	// GET registers a handler for GET requests.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(path string, h HandlerFunc, mw ...Middleware)

	// PATCH registers a handler for PATCH requests.
	PATCH(path string, h HandlerFunc, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// HEAD registers a handler for HEAD requests.
	HEAD(path string, h HandlerFunc, mw ...Middleware)

	// OPTIONS registers a handler for OPTIONS requests.
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline route group.
	// All routes defined inside fn share no common pattern prefix.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	// All routes defined inside fn share the pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the router's middleware stack.
	// Middleware added here applies to routes registered after the call.
	Use(mw ...Middleware)

	// Mount attaches an http.Handler at the given prefix. The prefix is
	// stripped from the request path before the handler sees it. Mounted
	// handlers are consulted only when no registered pattern matches the
	// path shape.
	Mount(pattern string, h http.Handler)
}

// segment is one element of a parsed route pattern: either a literal that
// must match exactly, or a named placeholder capturing one non-empty path
// segment.
type segment struct {
	literal string
	param   string
}

// route holds the per-verb handlers registered under one normalized pattern.
type route struct {
	pattern  string
	segments []segment
	handlers map[string]HandlerFunc
}

type mountPoint struct {
	prefix  string
	handler http.Handler
}

// routeTable is the dispatch state: patterns in registration order, each
// mapping verbs to handlers. It is built during setup and read-only once the
// app starts serving, which is what makes concurrent dispatch safe.
type routeTable struct {
	routes    []*route
	byPattern map[string]*route
	mounts    []mountPoint

	// Optional overrides for the default 404/405 error returns.
	notFound         HandlerFunc
	methodNotAllowed HandlerFunc
}

func newRouteTable() *routeTable {
	return &routeTable{byPattern: make(map[string]*route)}
}

// register adds a verb+pattern mapping. Patterns keep their registration
// order for dispatch; re-registering a (pattern, verb) pair replaces the
// previous handler.
func (t *routeTable) register(verb, pattern string, h HandlerFunc) {
	pattern = normalizePattern(pattern)
	if rt, ok := t.byPattern[pattern]; ok {
		rt.handlers[verb] = h
		return
	}
	rt := &route{
		pattern:  pattern,
		segments: parsePattern(pattern),
		handlers: map[string]HandlerFunc{verb: h},
	}
	t.byPattern[pattern] = rt
	t.routes = append(t.routes, rt)
}

func (t *routeTable) mount(prefix string, h http.Handler) {
	prefix = strings.TrimSuffix(normalizePattern(prefix), "/")
	t.mounts = append(t.mounts, mountPoint{
		prefix:  prefix,
		handler: http.StripPrefix(prefix, h),
	})
}

// dispatch is the terminal stage of the middleware chain. It scans patterns
// in registration order and stops at the first whose shape matches the path:
// a verb miss there is a 405 with an Allow header, never a fallthrough to a
// later pattern. Only when no shape matches are mounted handlers consulted,
// and after them the result is a 404.
func (t *routeTable) dispatch(c Context) error {
	req := c.Request()
	rawSegments := splitPath(req.URL.EscapedPath())
	segments := decodeSegments(rawSegments)

	for _, rt := range t.routes {
		if !rt.matchShape(segments) {
			continue
		}

		c.Set(routePatternKey{}, rt.pattern)

		h, ok := rt.handlers[req.Method]
		if !ok {
			allow := strings.Join(slices.Sorted(maps.Keys(rt.handlers)), ", ")
			if t.methodNotAllowed != nil {
				c.SetHeader("Allow", allow)
				return t.methodNotAllowed(c)
			}
			return ErrMethodNotAllowed("method not allowed", WithHeader("Allow", allow))
		}

		if params := rt.captureParams(segments); params != nil {
			c.Set(routeParamsKey{}, params)
		}
		return h(c)
	}

	if m, ok := t.mountFor(req.URL.EscapedPath()); ok {
		m.handler.ServeHTTP(c.Response(), req)
		return nil
	}

	if t.notFound != nil {
		return t.notFound(c)
	}
	return ErrNotFound("not found")
}

// matchShape reports whether the decoded request segments fit the pattern:
// same segment count, literals equal, placeholders covering one non-empty
// segment each.
func (rt *route) matchShape(segments []string) bool {
	if len(segments) != len(rt.segments) {
		return false
	}
	for i, s := range rt.segments {
		if s.param != "" {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if s.literal != segments[i] {
			return false
		}
	}
	return true
}

// captureParams binds placeholder names to their decoded segment values.
// When a pattern repeats a placeholder name, the last captured value wins.
func (rt *route) captureParams(segments []string) map[string]string {
	var params map[string]string
	for i, s := range rt.segments {
		if s.param == "" {
			continue
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[s.param] = segments[i]
	}
	return params
}

// RoutePattern returns the pattern that matched the current request, for
// example "/users/{id}". It is empty before dispatch and for requests no
// pattern matched, so middleware reading it after calling next gets the
// matched pattern while a 404 yields "".
func RoutePattern(c Context) string {
	if p, ok := c.Get(routePatternKey{}).(string); ok {
		return p
	}
	return ""
}

func (t *routeTable) mountFor(path string) (mountPoint, bool) {
	for _, m := range t.mounts {
		if m.prefix == "" || path == m.prefix || strings.HasPrefix(path, m.prefix+"/") {
			return m, true
		}
	}
	return mountPoint{}, false
}

// normalizePattern ensures the pattern begins with exactly one leading slash.
func normalizePattern(pattern string) string {
	return "/" + strings.TrimLeft(pattern, "/")
}

// parsePattern splits a normalized pattern into segments. A segment is a
// placeholder only when it is fully delimited as {name} with a non-empty
// name; anything else, including a bare "{}", stays a literal.
func parsePattern(pattern string) []segment {
	parts := strings.Split(pattern[1:], "/")
	segments := make([]segment, len(parts))
	for i, part := range parts {
		if len(part) > 2 && strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			segments[i] = segment{param: part[1 : len(part)-1]}
			continue
		}
		segments[i] = segment{literal: part}
	}
	return segments
}

// splitPath splits a request path on the escaped form, so an encoded slash
// inside a segment does not create a segment boundary.
func splitPath(path string) []string {
	return strings.Split(normalizePattern(path)[1:], "/")
}

// decodeSegments URL-decodes each segment individually. A segment that fails
// to decode is kept as-is rather than rejected here; it simply won't match
// any literal it doesn't equal.
func decodeSegments(raw []string) []string {
	decoded := make([]string, len(raw))
	for i, s := range raw {
		if d, err := url.PathUnescape(s); err == nil {
			decoded[i] = d
		} else {
			decoded[i] = s
		}
	}
	return decoded
}

// routerScope is the Router implementation handed to route declarations.
// Each scope carries its pattern prefix and middleware stack; Route and
// Group derive child scopes, and registrations land in the app's shared
// route table with the scope's middleware folded around the handler.
type routerScope struct {
	app    *App
	prefix string
	mws    []Middleware
}

func (r *routerScope) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodGet, path, h, mw)
}

func (r *routerScope) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPost, path, h, mw)
}

func (r *routerScope) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPut, path, h, mw)
}

func (r *routerScope) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPatch, path, h, mw)
}

func (r *routerScope) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodDelete, path, h, mw)
}

func (r *routerScope) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodHead, path, h, mw)
}

func (r *routerScope) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodOptions, path, h, mw)
}

func (r *routerScope) Group(fn func(Router)) {
	fn(&routerScope{app: r.app, prefix: r.prefix, mws: slices.Clone(r.mws)})
}

func (r *routerScope) Route(pattern string, fn func(Router)) {
	fn(&routerScope{app: r.app, prefix: joinPattern(r.prefix, pattern), mws: slices.Clone(r.mws)})
}

func (r *routerScope) Use(mw ...Middleware) {
	r.mws = append(r.mws, mw...)
}

func (r *routerScope) Mount(pattern string, h http.Handler) {
	r.app.routes.mount(joinPattern(r.prefix, pattern), h)
}

// handle wraps the handler with the scope's middleware stack followed by the
// route's own, first entry outermost, and registers the result.
func (r *routerScope) handle(verb, path string, h HandlerFunc, mw []Middleware) {
	chain := make([]Middleware, 0, len(r.mws)+len(mw))
	chain = append(chain, r.mws...)
	chain = append(chain, mw...)
	r.app.routes.register(verb, joinPattern(r.prefix, path), applyMiddleware(h, chain))
}

func joinPattern(prefix, pattern string) string {
	return strings.TrimSuffix(normalizePattern(prefix), "/") + normalizePattern(pattern)
}
