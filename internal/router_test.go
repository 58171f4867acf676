package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/anvil/internal"
)

// routesFunc adapts a plain function to the Handler interface.
type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

func newApp(routes func(r internal.Router), opts ...internal.Option) *internal.App {
	opts = append(opts, internal.WithHandlers(routesFunc(routes)))
	return internal.New(opts...)
}

func perform(app *internal.App, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func textHandler(body string) internal.HandlerFunc {
	return func(c internal.Context) error {
		return c.String(http.StatusOK, body)
	}
}

func paramHandler(name string) internal.HandlerFunc {
	return func(c internal.Context) error {
		return c.String(http.StatusOK, c.Param(name))
	}
}

// --- Matching tests ---

func TestRouterLiteralMatch(t *testing.T) {
	t.Parallel()

	t.Run("matches exact path", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products", textHandler("list"))
		})

		w := perform(app, http.MethodGet, "/products")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "list", w.Body.String())
	})

	t.Run("query string does not affect matching", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products", textHandler("list"))
		})

		w := perform(app, http.MethodGet, "/products?page=2&limit=10")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "list", w.Body.String())
	})

	t.Run("trailing slash is a different shape", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products", textHandler("list"))
		})

		w := perform(app, http.MethodGet, "/products/")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown path returns 404 envelope", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products", textHandler("list"))
		})

		w := perform(app, http.MethodGet, "/orders")
		require.Equal(t, http.StatusNotFound, w.Code)
		require.JSONEq(t, `{"status":"error","code":404,"message":"not found"}`, w.Body.String())
	})

	t.Run("root pattern matches root path", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/", textHandler("home"))
		})

		w := perform(app, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "home", w.Body.String())
	})
}

func TestRouterParams(t *testing.T) {
	t.Parallel()

	t.Run("captures one segment", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products/{id}", paramHandler("id"))
		})

		w := perform(app, http.MethodGet, "/products/42")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "42", w.Body.String())
	})

	t.Run("captures several segments", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/shops/{shop}/products/{id}", func(c internal.Context) error {
				return c.String(http.StatusOK, c.Param("shop")+"/"+c.Param("id"))
			})
		})

		w := perform(app, http.MethodGet, "/shops/acme/products/7")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "acme/7", w.Body.String())
	})

	t.Run("decodes percent-encoded values", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products/{id}", paramHandler("id"))
		})

		w := perform(app, http.MethodGet, "/products/a%20b")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "a b", w.Body.String())
	})

	t.Run("encoded slash stays inside one segment", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products/{id}", paramHandler("id"))
		})

		w := perform(app, http.MethodGet, "/products/a%2Fb")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "a/b", w.Body.String())
	})

	t.Run("placeholder never matches an empty segment", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products/{id}", paramHandler("id"))
		})

		w := perform(app, http.MethodGet, "/products/")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("placeholder does not span segments", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products/{id}", paramHandler("id"))
		})

		w := perform(app, http.MethodGet, "/products/1/reviews")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("repeated placeholder name keeps the last capture", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/pairs/{v}/{v}", paramHandler("v"))
		})

		w := perform(app, http.MethodGet, "/pairs/first/second")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "second", w.Body.String())
	})
}

// --- Precedence tests ---

func TestRouterPrecedence(t *testing.T) {
	t.Parallel()

	t.Run("registration order decides shape ties", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products/{id}", paramHandler("id"))
			r.GET("/products/special", textHandler("special"))
		})

		// The placeholder route was registered first, so it wins and
		// captures the literal as the id value.
		w := perform(app, http.MethodGet, "/products/special")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "special", w.Body.String())
	})

	t.Run("literal registered first shadows placeholder", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/products/special", textHandler("the special one"))
			r.GET("/products/{id}", paramHandler("id"))
		})

		w := perform(app, http.MethodGet, "/products/special")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "the special one", w.Body.String())

		w = perform(app, http.MethodGet, "/products/42")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "42", w.Body.String())
	})

	t.Run("first matching shape owns the verb miss", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/widgets/{id}", paramHandler("id"))
			r.DELETE("/widgets/special", textHandler("deleted"))
		})

		// /widgets/special fits the placeholder shape registered first.
		// That route has no DELETE handler, so the scan stops with a 405
		// instead of falling through to the literal route below it.
		w := perform(app, http.MethodDelete, "/widgets/special")
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		require.Equal(t, "GET", w.Header().Get("Allow"))
	})
}

// --- Method handling tests ---

func TestRouterMethodNotAllowed(t *testing.T) {
	t.Parallel()

	t.Run("lists allowed verbs sorted", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/things", textHandler("get"))
			r.POST("/things", textHandler("post"))
			r.DELETE("/things", textHandler("delete"))
		})

		w := perform(app, http.MethodPatch, "/things")
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		require.Equal(t, "DELETE, GET, POST", w.Header().Get("Allow"))
		require.JSONEq(t, `{"status":"error","code":405,"message":"method not allowed"}`, w.Body.String())
	})

	t.Run("HEAD is not implied by GET", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/things", textHandler("get"))
		})

		w := perform(app, http.MethodHead, "/things")
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		require.Equal(t, "GET", w.Header().Get("Allow"))
	})

	t.Run("each verb routes to its own handler", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/things", textHandler("get"))
			r.POST("/things", textHandler("post"))
			r.PUT("/things", textHandler("put"))
			r.PATCH("/things", textHandler("patch"))
			r.DELETE("/things", textHandler("delete"))
		})

		for verb, want := range map[string]string{
			http.MethodGet:    "get",
			http.MethodPost:   "post",
			http.MethodPut:    "put",
			http.MethodPatch:  "patch",
			http.MethodDelete: "delete",
		} {
			w := perform(app, verb, "/things")
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, want, w.Body.String())
		}
	})

	t.Run("re-registering a verb replaces the handler", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.GET("/things", textHandler("first"))
			r.GET("/things", textHandler("second"))
		})

		w := perform(app, http.MethodGet, "/things")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "second", w.Body.String())
	})
}

// --- Grouping tests ---

func TestRouterGroups(t *testing.T) {
	t.Parallel()

	t.Run("Route adds a pattern prefix", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Route("/api", func(r internal.Router) {
				r.GET("/products", textHandler("api products"))
			})
		})

		w := perform(app, http.MethodGet, "/api/products")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "api products", w.Body.String())

		w = perform(app, http.MethodGet, "/products")
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Route prefixes nest", func(t *testing.T) {
		t.Parallel()

		app := newApp(func(r internal.Router) {
			r.Route("/api", func(r internal.Router) {
				r.Route("/v1", func(r internal.Router) {
					r.GET("/products/{id}", paramHandler("id"))
				})
			})
		})

		w := perform(app, http.MethodGet, "/api/v1/products/9")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "9", w.Body.String())
	})

	t.Run("Use applies to routes registered after the call", func(t *testing.T) {
		t.Parallel()

		tag := func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.SetHeader("X-Tagged", "yes")
				return next(c)
			}
		}

		app := newApp(func(r internal.Router) {
			r.GET("/before", textHandler("before"))
			r.Use(tag)
			r.GET("/after", textHandler("after"))
		})

		w := perform(app, http.MethodGet, "/before")
		require.Empty(t, w.Header().Get("X-Tagged"))

		w = perform(app, http.MethodGet, "/after")
		require.Equal(t, "yes", w.Header().Get("X-Tagged"))
	})

	t.Run("Group isolates middleware from siblings", func(t *testing.T) {
		t.Parallel()

		tag := func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.SetHeader("X-Tagged", "yes")
				return next(c)
			}
		}

		app := newApp(func(r internal.Router) {
			r.Group(func(r internal.Router) {
				r.Use(tag)
				r.GET("/inside", textHandler("inside"))
			})
			r.GET("/outside", textHandler("outside"))
		})

		w := perform(app, http.MethodGet, "/inside")
		require.Equal(t, "yes", w.Header().Get("X-Tagged"))

		w = perform(app, http.MethodGet, "/outside")
		require.Empty(t, w.Header().Get("X-Tagged"))
	})

	t.Run("scope middleware wraps route middleware", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) internal.Middleware {
			return func(next internal.HandlerFunc) internal.HandlerFunc {
				return func(c internal.Context) error {
					order = append(order, name)
					return next(c)
				}
			}
		}

		app := newApp(func(r internal.Router) {
			r.Use(record("scope"))
			r.GET("/x", func(c internal.Context) error {
				order = append(order, "handler")
				return c.NoContent(http.StatusOK)
			}, record("route"))
		})

		w := perform(app, http.MethodGet, "/x")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, []string{"scope", "route", "handler"}, order)
	})
}

// --- Mount tests ---

func TestRouterMount(t *testing.T) {
	t.Parallel()

	t.Run("serves paths below the prefix with the prefix stripped", func(t *testing.T) {
		t.Parallel()

		mounted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("seen " + r.URL.Path))
		})

		app := newApp(func(r internal.Router) {
			r.Mount("/debug", mounted)
		})

		w := perform(app, http.MethodGet, "/debug/vars")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "seen /vars", w.Body.String())
	})

	t.Run("registered patterns win over mounts", func(t *testing.T) {
		t.Parallel()

		mounted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("mounted"))
		})

		app := newApp(func(r internal.Router) {
			r.GET("/debug/health", textHandler("routed"))
			r.Mount("/debug", mounted)
		})

		w := perform(app, http.MethodGet, "/debug/health")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "routed", w.Body.String())

		w = perform(app, http.MethodGet, "/debug/other")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "mounted", w.Body.String())
	})

	t.Run("paths outside the prefix fall through to 404", func(t *testing.T) {
		t.Parallel()

		mounted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		app := newApp(func(r internal.Router) {
			r.Mount("/debug", mounted)
		})

		w := perform(app, http.MethodGet, "/other")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
