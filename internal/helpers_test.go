package internal_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anvil/internal"
)

// paramVia routes GET /{id} with raw as the path segment and runs fn inside
// the handler, so the typed helpers are exercised against the real context.
func paramVia(t *testing.T, raw string, fn func(c internal.Context)) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/"+url.PathEscape(raw), nil)
	requestViaParam(t, req, nil, fn)
}

// queryVia sends GET / with the given raw query string.
func queryVia(t *testing.T, rawQuery string, fn func(c internal.Context)) {
	t.Helper()

	target := "/"
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	requestVia(t, req, nil, fn)
}

func TestParam(t *testing.T) {
	t.Parallel()

	t.Run("string keeps the decoded segment", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]string{
			"plain":       "plain",
			"hello world": "hello world",
			"TRUE":        "TRUE",
		} {
			paramVia(t, raw, func(c internal.Context) {
				require.Equal(t, want, internal.Param[string](c, "id"))
			})
		}
	})

	t.Run("int parses or yields zero", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]int{
			"42":    42,
			"-7":    -7,
			"0":     0,
			"abc":   0,
			"3.14":  0,
			"42abc": 0,
		} {
			paramVia(t, raw, func(c internal.Context) {
				require.Equal(t, want, internal.Param[int](c, "id"), "raw %q", raw)
			})
		}
	})

	t.Run("int64 handles values past 32 bits", func(t *testing.T) {
		t.Parallel()

		paramVia(t, "9999999999", func(c internal.Context) {
			require.Equal(t, int64(9999999999), internal.Param[int64](c, "id"))
		})
		paramVia(t, "not-a-number", func(c internal.Context) {
			require.Zero(t, internal.Param[int64](c, "id"))
		})
	})

	t.Run("float64 parses or yields zero", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]float64{
			"3.14": 3.14,
			"-2.5": -2.5,
			"42":   42.0,
			"abc":  0,
		} {
			paramVia(t, raw, func(c internal.Context) {
				require.InDelta(t, want, internal.Param[float64](c, "id"), 0.001, "raw %q", raw)
			})
		}
	})

	t.Run("bool accepts strconv forms only", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]bool{
			"true":  true,
			"1":     true,
			"TRUE":  true,
			"false": false,
			"0":     false,
			"maybe": false,
			"yes":   false,
		} {
			paramVia(t, raw, func(c internal.Context) {
				require.Equal(t, want, internal.Param[bool](c, "id"), "raw %q", raw)
			})
		}
	})

	t.Run("name outside the route yields zero values", func(t *testing.T) {
		t.Parallel()

		paramVia(t, "anything", func(c internal.Context) {
			require.Empty(t, internal.Param[string](c, "slug"))
			require.Zero(t, internal.Param[int](c, "slug"))
			require.Zero(t, internal.Param[int64](c, "slug"))
			require.Zero(t, internal.Param[float64](c, "slug"))
			require.False(t, internal.Param[bool](c, "slug"))
		})
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		queryVia(t, "q=widgets", func(c internal.Context) {
			require.Equal(t, "widgets", internal.Query[string](c, "q"))
		})
		queryVia(t, "q=", func(c internal.Context) {
			require.Empty(t, internal.Query[string](c, "q"))
		})
		queryVia(t, "", func(c internal.Context) {
			require.Empty(t, internal.Query[string](c, "q"))
		})
	})

	t.Run("int parses or yields zero", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]int{
			"page=5":   5,
			"page=0":   0,
			"page=-1":  -1,
			"page=abc": 0,
			"":         0,
		} {
			queryVia(t, raw, func(c internal.Context) {
				require.Equal(t, want, internal.Query[int](c, "page"), "query %q", raw)
			})
		}
	})

	t.Run("int64 and float64", func(t *testing.T) {
		t.Parallel()

		queryVia(t, "id=9876543210", func(c internal.Context) {
			require.Equal(t, int64(9876543210), internal.Query[int64](c, "id"))
		})
		queryVia(t, "price=19.99", func(c internal.Context) {
			require.InDelta(t, 19.99, internal.Query[float64](c, "price"), 0.001)
		})
	})

	t.Run("bool", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]bool{
			"v=true":  true,
			"v=1":     true,
			"v=false": false,
			"v=yes":   false,
			"":        false,
		} {
			queryVia(t, raw, func(c internal.Context) {
				require.Equal(t, want, internal.Query[bool](c, "v"), "query %q", raw)
			})
		}
	})
}

func TestQueryDefault(t *testing.T) {
	t.Parallel()

	t.Run("absent parameter yields the default", func(t *testing.T) {
		t.Parallel()

		queryVia(t, "", func(c internal.Context) {
			require.Equal(t, 1, internal.QueryDefault[int](c, "page", 1))
			require.Equal(t, "all", internal.QueryDefault[string](c, "scope", "all"))
			require.Equal(t, int64(250), internal.QueryDefault[int64](c, "limit", 250))
			require.InDelta(t, 0.5, internal.QueryDefault[float64](c, "ratio", 0.5), 0.001)
			require.True(t, internal.QueryDefault[bool](c, "active", true))
		})
	})

	t.Run("present parameter overrides the default", func(t *testing.T) {
		t.Parallel()

		queryVia(t, "page=3&scope=mine&limit=10&ratio=0.9&active=false", func(c internal.Context) {
			require.Equal(t, 3, internal.QueryDefault[int](c, "page", 1))
			require.Equal(t, "mine", internal.QueryDefault[string](c, "scope", "all"))
			require.Equal(t, int64(10), internal.QueryDefault[int64](c, "limit", 250))
			require.InDelta(t, 0.9, internal.QueryDefault[float64](c, "ratio", 0.5), 0.001)
			require.False(t, internal.QueryDefault[bool](c, "active", true))
		})
	})

	t.Run("blank value yields the default", func(t *testing.T) {
		t.Parallel()

		queryVia(t, "page=", func(c internal.Context) {
			require.Equal(t, 1, internal.QueryDefault[int](c, "page", 1))
		})
	})

	t.Run("unparseable value yields the default", func(t *testing.T) {
		t.Parallel()

		queryVia(t, "page=first", func(c internal.Context) {
			require.Equal(t, 1, internal.QueryDefault[int](c, "page", 1))
		})
	})
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	req := func() *http.Request { return httptest.NewRequest(http.MethodGet, "/", nil) }

	t.Run("returns the typed value for a matching key", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		requestVia(t, req(), nil, func(c internal.Context) {
			c.Set(key{}, "stored")
			require.Equal(t, "stored", internal.ContextValue[string](c, key{}))
		})
	})

	t.Run("type mismatch yields the zero value", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		requestVia(t, req(), nil, func(c internal.Context) {
			c.Set(key{}, 42)
			require.Empty(t, internal.ContextValue[string](c, key{}))
		})
	})

	t.Run("missing key yields the zero value", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		requestVia(t, req(), nil, func(c internal.Context) {
			require.Empty(t, internal.ContextValue[string](c, key{}))
			require.Zero(t, internal.ContextValue[int](c, key{}))
			require.False(t, internal.ContextValue[bool](c, key{}))
		})
	})

	t.Run("carries struct values intact", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		type account struct {
			Email string
			Plan  string
		}

		requestVia(t, req(), nil, func(c internal.Context) {
			c.Set(key{}, account{Email: "a@b.test", Plan: "pro"})
			got := internal.ContextValue[account](c, key{})
			require.Equal(t, account{Email: "a@b.test", Plan: "pro"}, got)
		})

		requestVia(t, req(), nil, func(c internal.Context) {
			require.Equal(t, account{}, internal.ContextValue[account](c, key{}))
		})
	})
}
