package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/anvil/pkg/health"
	"github.com/dmitrymomot/anvil/pkg/logger"
)

// Option configures the App while New assembles it.
type Option func(*App)

// WithMiddleware adds global middleware. Order matters: the first one
// given sees the request first and the response last.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// New calls every handler's Routes method while the table is assembled,
// so registration order decides match order.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles mounts an embedded file tree at the given prefix.
// Directory listings 404. A bad subDir panics, since an embed path that
// does not exist is a build mistake and not a runtime condition.
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
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		a.staticRoutes = append(a.staticRoutes, staticRoute{staticFileHandler(subFS), pattern})
	}
}

// staticFileHandler serves files with cache headers, refusing directory
// paths so listings never leak.
func staticFileHandler(fsys fs.FS) http.Handler {
	files := http.FileServerFS(fsys)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

// WithMount attaches an http.Handler at the given prefix, outside the
// middleware chain's route dispatch. Useful for exporters and debug
// handlers that already speak plain net/http.
//
// Example:
//
//	anvil.WithMount("/metrics", promhttp.Handler())
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		a.staticRoutes = append(a.staticRoutes, staticRoute{h, pattern})
	}
}

// WithErrorHandler installs a custom renderer for errors that escape the
// chain. When the custom handler itself returns a non-nil error the default
// JSON error envelope takes over.
//
// Example:
//
//	anvil.WithErrorHandler(func(c anvil.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
//
// Example:
//
//	anvil.WithNotFoundHandler(func(c anvil.Context) error {
//	    return c.String(http.StatusNotFound, "nothing here")
//	})
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler. The Allow header
// listing the verbs the matched pattern supports is set before the handler
// runs.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables the health endpoints. Liveness answers OK as
// long as the process serves; readiness runs every registered check and
// fails when any of them does.
//
// Example:
//
//	anvil.WithHealthChecks(
//	    anvil.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    anvil.WithReadinessCheck("sqlite", sqlite.Healthcheck(conn)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger builds the app logger with a component attribute on every
// record plus optional extractors that pull per-request values (such as
// request_id) out of context.
//
// Example:
//
//	anvil.New(
//	    anvil.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger replaces the app logger wholesale. A nil logger is
// ignored so the noop default stays in place.
//
// Example:
//
//	customLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	anvil.New(
//	    anvil.WithCustomLogger(customLogger),
//	)
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
