package anvil_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anvil"
)

// products is a minimal handler exercising the public API the way an
// application would.
type products struct{}

func (products) Routes(r anvil.Router) {
	r.Route("/products", func(r anvil.Router) {
		r.GET("/", func(c anvil.Context) error {
			page := anvil.QueryDefault(c, "page", 1)
			return c.JSON(http.StatusOK, map[string]any{"page": page})
		})
		r.POST("/", func(c anvil.Context) error {
			return c.NoContent(http.StatusCreated)
		})
		r.GET("/{id}", func(c anvil.Context) error {
			id := anvil.Param[int64](c, "id")
			if id == 0 {
				return anvil.ErrBadRequest("invalid product id")
			}
			return c.JSON(http.StatusOK, map[string]any{
				"id":      id,
				"pattern": anvil.RoutePattern(c),
			})
		})
	})
}

// routesFunc adapts a function to the Handler interface.
type routesFunc func(anvil.Router)

func (f routesFunc) Routes(r anvil.Router) { f(r) }

func serve(app *anvil.App, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestAppEndToEnd(t *testing.T) {
	t.Parallel()

	app := anvil.New(anvil.WithHandlers(products{}))

	t.Run("typed route param and route pattern", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/products/42")
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"id":42,"pattern":"/products/{id}"}`, w.Body.String())
	})

	t.Run("typed query with default", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/products/")
		require.JSONEq(t, `{"page":1}`, w.Body.String())

		w = serve(app, http.MethodGet, "/products/?page=3")
		require.JSONEq(t, `{"page":3}`, w.Body.String())
	})

	t.Run("handler error renders the envelope", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/products/zero")
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.JSONEq(t, `{"status":"error","code":400,"message":"invalid product id"}`, w.Body.String())
	})

	t.Run("wrong verb yields 405 with Allow", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodDelete, "/products/")
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		require.Equal(t, "GET, POST", w.Header().Get("Allow"))
	})

	t.Run("unknown path yields 404", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/orders")
		require.Equal(t, http.StatusNotFound, w.Code)
		require.JSONEq(t, `{"status":"error","code":404,"message":"not found"}`, w.Body.String())
	})
}

func TestAppMiddlewareViaFacade(t *testing.T) {
	t.Parallel()

	t.Run("global middleware wraps every route", func(t *testing.T) {
		t.Parallel()

		tag := func(next anvil.HandlerFunc) anvil.HandlerFunc {
			return func(c anvil.Context) error {
				c.SetHeader("X-Request-Tag", "tagged")
				return next(c)
			}
		}

		app := anvil.New(
			anvil.WithMiddleware(tag),
			anvil.WithHandlers(products{}),
		)

		w := serve(app, http.MethodGet, "/products/7")
		require.Equal(t, "tagged", w.Header().Get("X-Request-Tag"))
	})

	t.Run("middleware sees errors before the boundary converts them", func(t *testing.T) {
		t.Parallel()

		var observed error
		observe := func(next anvil.HandlerFunc) anvil.HandlerFunc {
			return func(c anvil.Context) error {
				observed = next(c)
				return observed
			}
		}

		app := anvil.New(
			anvil.WithMiddleware(observe),
			anvil.WithHandlers(products{}),
		)

		serve(app, http.MethodGet, "/products/zero")
		require.True(t, anvil.IsHTTPError(observed))
		require.Equal(t, http.StatusBadRequest, anvil.AsHTTPError(observed).Code)
	})
}

func TestAppHealthViaFacade(t *testing.T) {
	t.Parallel()

	app := anvil.New(
		anvil.WithHealthChecks(
			anvil.WithReadinessCheck("store", func(ctx context.Context) error { return nil }),
		),
	)

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/health/live")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("readiness", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/health/ready")
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHTTPErrorSurface(t *testing.T) {
	t.Parallel()

	t.Run("constructors carry code and message", func(t *testing.T) {
		t.Parallel()

		err := anvil.ErrConflict("name taken")
		require.Equal(t, http.StatusConflict, err.Code)
		require.Equal(t, "name taken", err.Message)
	})

	t.Run("options attach cause and headers", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("duplicate key")
		err := anvil.NewHTTPError(http.StatusConflict, "name taken",
			anvil.WithError(cause),
			anvil.WithHeader("X-Conflict-Field", "name"),
		)
		require.ErrorIs(t, err, cause)
		require.Equal(t, "name", err.Headers["X-Conflict-Field"])
	})

	t.Run("AsHTTPError returns nil for plain errors", func(t *testing.T) {
		t.Parallel()

		require.False(t, anvil.IsHTTPError(errors.New("boom")))
		require.Nil(t, anvil.AsHTTPError(errors.New("boom")))
	})
}

func TestRegistryViaFacade(t *testing.T) {
	t.Parallel()

	reg := anvil.NewRegistry()
	reg.Register("products.list", func(c anvil.Context) error {
		return c.String(http.StatusOK, "listed")
	})

	app := anvil.New(anvil.WithHandlers(routesFunc(func(r anvil.Router) {
		r.GET("/products", reg.Handler("products.list"))
		r.GET("/missing", reg.Handler("products.export"))
	})))

	t.Run("resolved key dispatches", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/products")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "listed", w.Body.String())
	})

	t.Run("unresolved key fails without leaking the key", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/missing")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotContains(t, w.Body.String(), "products.export")
	})
}

func TestExtractorViaFacade(t *testing.T) {
	t.Parallel()

	var got string
	ext := anvil.NewExtractor(
		anvil.FromBearerToken(),
		anvil.FromQuery("token"),
	)

	app := anvil.New(anvil.WithHandlers(routesFunc(func(r anvil.Router) {
		r.GET("/secure", func(c anvil.Context) error {
			token, ok := ext.Extract(c)
			if !ok {
				return anvil.ErrUnauthorized("credentials required")
			}
			got = token
			return c.NoContent(http.StatusOK)
		})
	})))

	t.Run("bearer header wins over query", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/secure?token=from-query", nil)
		r.Header.Set("Authorization", "Bearer from-header")
		app.ServeHTTP(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "from-header", got)
	})

	t.Run("no source present rejects", func(t *testing.T) {
		t.Parallel()

		w := serve(app, http.MethodGet, "/secure")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
