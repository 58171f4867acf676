package internal

import (
	"strings"
)

// ExtractorSource reads one candidate value from a request. It reports
// ("", false) on a miss so sources compose without sentinel values.
type ExtractorSource = func(Context) (string, bool)

// Extractor resolves a request value through an ordered source list.
// Order encodes priority: an Authorization header can win over a query
// parameter simply by being listed first.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor builds an Extractor over the given sources.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value any source yields, in source
// order. An empty string from a source counts as a miss even when the source
// itself reported a hit.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// nonEmpty adapts a plain getter into an ExtractorSource that misses on "".
func nonEmpty(get func(Context) string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := get(c)
		return v, v != ""
	}
}

// FromHeader reads the named request header.
func FromHeader(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Header(name) })
}

// FromQuery reads the named query parameter.
func FromQuery(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Query(name) })
}

// FromCookie reads the named cookie. A missing cookie and an empty cookie
// value are both misses.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil || v == "" {
			return "", false
		}
		return v, true
	}
}

// FromParam reads the named route parameter.
func FromParam(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Param(name) })
}

// FromForm reads the named form field.
func FromForm(name string) ExtractorSource {
	return nonEmpty(func(c Context) string { return c.Form(name) })
}

// FromBearerToken reads the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive per RFC 9110; a bare
// "Bearer " with no token is a miss.
func FromBearerToken() ExtractorSource {
	return func(c Context) (string, bool) {
		auth := c.Header("Authorization")
		const prefix = "Bearer "
		if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
			return "", false
		}
		return auth[len(prefix):], true
	}
}
