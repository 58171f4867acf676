package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/anvil/internal"
)

// DefaultCORSMaxAge caps preflight caching at 12 hours.
const DefaultCORSMaxAge = 12 * time.Hour

// DefaultCORSConfig allows any origin without credentials, the usual verbs,
// and the headers JSON APIs exchange.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	MaxAge:       DefaultCORSMaxAge,
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins is the static allow-list. "*" admits every origin, which
	// is incompatible with credentials.
	AllowOrigins []string

	// AllowOriginFunc validates origins dynamically. When set it replaces
	// AllowOrigins entirely.
	AllowOriginFunc func(origin string) bool

	// AllowMethods lists the verbs announced to preflight requests.
	AllowMethods []string

	// AllowHeaders lists the request headers announced to preflight requests.
	AllowHeaders []string

	// ExposeHeaders lists response headers scripts may read.
	ExposeHeaders []string

	// AllowCredentials permits cookies and Authorization headers. The
	// response then echoes the request origin; "*" is never sent.
	AllowCredentials bool

	// MaxAge is how long browsers may cache a preflight answer.
	MaxAge time.Duration
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigins replaces the static origin allow-list.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigins = origins
	}
}

// WithAllowOriginFunc installs a dynamic origin validator that replaces the
// static list.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOriginFunc = fn
	}
}

// WithAllowMethods replaces the verbs announced to preflights.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders replaces the request headers announced to preflights.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithExposeHeaders sets the response headers scripts may read.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.ExposeHeaders = headers
	}
}

// WithAllowCredentials permits cookies and Authorization headers on
// cross-origin requests.
func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowCredentials = true
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(duration time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = duration
	}
}

// corsState holds the header values shared by every request, joined once at
// setup time.
type corsState struct {
	cfg           *CORSConfig
	wildcard      bool
	allowMethods  string
	allowHeaders  string
	exposeHeaders string
	maxAge        string
}

// CORS returns middleware implementing Cross-Origin Resource Sharing.
// Preflight OPTIONS requests are answered with 204 and never reach the
// handler; all other requests pass through with the response headers added.
// Requests from origins outside the allow-list get no CORS headers at all,
// which makes the browser reject the response.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := &CORSConfig{
		AllowOrigins: DefaultCORSConfig.AllowOrigins,
		AllowMethods: DefaultCORSConfig.AllowMethods,
		AllowHeaders: DefaultCORSConfig.AllowHeaders,
		MaxAge:       DefaultCORSConfig.MaxAge,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &corsState{
		cfg:           cfg,
		wildcard:      slices.Contains(cfg.AllowOrigins, "*"),
		allowMethods:  strings.Join(cfg.AllowMethods, ", "),
		allowHeaders:  strings.Join(cfg.AllowHeaders, ", "),
		exposeHeaders: strings.Join(cfg.ExposeHeaders, ", "),
		maxAge:        strconv.Itoa(int(cfg.MaxAge.Seconds())),
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")

			// No Origin header means same-origin; a disallowed origin is
			// left without CORS headers on purpose.
			if origin == "" || !s.allows(origin) {
				return next(c)
			}

			h := c.Response().Header()
			s.apply(h, origin)

			if c.Request().Method == http.MethodOptions {
				s.preflight(h)
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

func (s *corsState) allows(origin string) bool {
	if s.cfg.AllowOriginFunc != nil {
		return s.cfg.AllowOriginFunc(origin)
	}
	return s.wildcard || slices.Contains(s.cfg.AllowOrigins, origin)
}

// apply writes the headers common to simple and preflight responses.
func (s *corsState) apply(h http.Header, origin string) {
	h.Add("Vary", "Origin")

	// "*" is only legal for anonymous wildcard setups; credentials and
	// explicit allow-lists echo the request origin.
	if s.cfg.AllowCredentials || !s.wildcard {
		h.Set("Access-Control-Allow-Origin", origin)
	} else {
		h.Set("Access-Control-Allow-Origin", "*")
	}

	if s.cfg.AllowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if s.exposeHeaders != "" {
		h.Set("Access-Control-Expose-Headers", s.exposeHeaders)
	}
}

// preflight writes the headers answering an OPTIONS probe.
func (s *corsState) preflight(h http.Header) {
	h.Add("Vary", "Access-Control-Request-Method")
	h.Add("Vary", "Access-Control-Request-Headers")

	h.Set("Access-Control-Allow-Methods", s.allowMethods)
	h.Set("Access-Control-Allow-Headers", s.allowHeaders)

	if s.cfg.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", s.maxAge)
	}
}
