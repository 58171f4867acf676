package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/middlewares"
)

// corsProbe pushes one request through the middleware and reports the
// recorded response plus whether the inner handler ran.
func corsProbe(t *testing.T, mw internal.Middleware, method, origin string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	req := httptest.NewRequest(method, "/", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rec := httptest.NewRecorder()

	reached := false
	h := mw(func(c internal.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(newTestContext(rec, req)))

	return rec, reached
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("wildcard default sends a literal star", func(t *testing.T) {
		t.Parallel()

		rec, reached := corsProbe(t, middlewares.CORS(), http.MethodGet, "https://shop.example")
		require.True(t, reached)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("same-origin requests pass through untouched", func(t *testing.T) {
		t.Parallel()

		rec, reached := corsProbe(t, middlewares.CORS(), http.MethodGet, "")
		require.True(t, reached)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Empty(t, rec.Header().Values("Vary"))
	})

	t.Run("allow-list", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowOrigins("https://shop.example", "https://admin.example"),
		)

		t.Run("echoes a listed origin instead of star", func(t *testing.T) {
			t.Parallel()

			rec, _ := corsProbe(t, mw, http.MethodGet, "https://admin.example")
			require.Equal(t, "https://admin.example", rec.Header().Get("Access-Control-Allow-Origin"))
		})

		t.Run("unlisted origin gets no CORS headers", func(t *testing.T) {
			t.Parallel()

			rec, reached := corsProbe(t, mw, http.MethodGet, "https://evil.example")
			require.True(t, reached, "request still reaches the handler")
			require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	})

	t.Run("origin func replaces the static list", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowOrigins("https://static.example"),
			middlewares.WithAllowOriginFunc(func(origin string) bool {
				return origin == "https://dynamic.example"
			}),
		)

		rec, _ := corsProbe(t, mw, http.MethodGet, "https://dynamic.example")
		require.Equal(t, "https://dynamic.example", rec.Header().Get("Access-Control-Allow-Origin"))

		rec, _ = corsProbe(t, mw, http.MethodGet, "https://static.example")
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"),
			"static list must be ignored once the func is set")
	})

	t.Run("preflight", func(t *testing.T) {
		t.Parallel()

		t.Run("answers 204 without reaching the handler", func(t *testing.T) {
			t.Parallel()

			rec, reached := corsProbe(t, middlewares.CORS(), http.MethodOptions, "https://shop.example")
			require.False(t, reached)
			require.Equal(t, http.StatusNoContent, rec.Code)
		})

		t.Run("announces methods, headers and cache lifetime", func(t *testing.T) {
			t.Parallel()

			mw := middlewares.CORS(
				middlewares.WithAllowMethods(http.MethodGet, http.MethodPost, http.MethodPut),
				middlewares.WithAllowHeaders("Content-Type", "X-Client-Version"),
				middlewares.WithMaxAge(time.Hour),
			)

			rec, _ := corsProbe(t, mw, http.MethodOptions, "https://shop.example")
			require.Equal(t, "GET, POST, PUT", rec.Header().Get("Access-Control-Allow-Methods"))
			require.Equal(t, "Content-Type, X-Client-Version", rec.Header().Get("Access-Control-Allow-Headers"))
			require.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
		})

		t.Run("varies on all three negotiation headers", func(t *testing.T) {
			t.Parallel()

			rec, _ := corsProbe(t, middlewares.CORS(), http.MethodOptions, "https://shop.example")
			vary := rec.Header().Values("Vary")
			require.Contains(t, vary, "Origin")
			require.Contains(t, vary, "Access-Control-Request-Method")
			require.Contains(t, vary, "Access-Control-Request-Headers")
		})
	})

	t.Run("credentials force the origin echo", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(middlewares.WithAllowCredentials())

		rec, _ := corsProbe(t, mw, http.MethodGet, "https://shop.example")
		require.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("exposed headers are advertised on simple responses", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(middlewares.WithExposeHeaders("X-Request-Id", "X-Total-Count"))

		rec, _ := corsProbe(t, mw, http.MethodGet, "https://shop.example")
		require.Equal(t, "X-Request-Id, X-Total-Count", rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("full option set on one preflight", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowOrigins("https://app.shop.example"),
			middlewares.WithAllowMethods(http.MethodGet, http.MethodPost),
			middlewares.WithAllowHeaders("Content-Type", "Authorization"),
			middlewares.WithExposeHeaders("X-Request-Id"),
			middlewares.WithAllowCredentials(),
			middlewares.WithMaxAge(30*time.Minute),
		)

		rec, reached := corsProbe(t, mw, http.MethodOptions, "https://app.shop.example")
		require.False(t, reached)
		require.Equal(t, "https://app.shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		require.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
		require.Equal(t, "X-Request-Id", rec.Header().Get("Access-Control-Expose-Headers"))
		require.Equal(t, "1800", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("handler response body survives the middleware", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://shop.example")
		rec := httptest.NewRecorder()

		h := middlewares.CORS()(func(c internal.Context) error {
			return c.String(http.StatusOK, "payload")
		})
		require.NoError(t, h(newTestContext(rec, req)))
		require.Equal(t, "payload", rec.Body.String())
	})
}
