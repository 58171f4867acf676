// Package anvil is a small framework for building JSON APIs on top of
// net/http. It gives you a registration-ordered router, a composable
// middleware pipeline, typed request helpers, structured error responses,
// and a server runtime with graceful shutdown, while staying close to the
// standard library.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "log"
//
//	    "github.com/dmitrymomot/anvil"
//	)
//
//	type hello struct{}
//
//	func (hello) Routes(r anvil.Router) {
//	    r.GET("/hello/{name}", func(c anvil.Context) error {
//	        return c.String(200, "hello, "+c.Param("name"))
//	    })
//	}
//
//	func main() {
//	    app := anvil.New(anvil.WithHandlers(hello{}))
//	    if err := app.Run(":8080"); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Handlers
//
// A Handler declares routes on a Router. Routes are matched in the order
// handlers register them; the first pattern whose shape fits the request
// path wins. A path that matches a pattern with the wrong verb yields 405
// with an Allow header, never 404.
//
//	type products struct{ store *sqlkit.CRUD }
//
//	func (h products) Routes(r anvil.Router) {
//	    r.Route("/products", func(r anvil.Router) {
//	        r.GET("/", h.list)
//	        r.POST("/", h.create)
//	        r.GET("/{id}", h.get)
//	        r.PUT("/{id}", h.update)
//	        r.DELETE("/{id}", h.delete)
//	    })
//	}
//
// Handlers return errors instead of writing error responses by hand:
//
//	func (h products) get(c anvil.Context) error {
//	    rows, err := h.store.Select(c, "products", sqlkit.SelectOptions{
//	        Where: map[string]any{"id": anvil.Param[int64](c, "id")},
//	        Limit: 1,
//	    })
//	    if err != nil {
//	        return err
//	    }
//	    if len(rows) == 0 {
//	        return anvil.ErrNotFound("product not found")
//	    }
//	    return c.JSON(200, rows[0])
//	}
//
// # Middleware
//
// Middleware wraps handlers. Global middleware applies to every route;
// router middleware added with Use or inside Group applies to routes
// registered after it.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logging(middlewares.WithLogger(log)),
//	        middlewares.Recover(),
//	    ),
//	    anvil.WithHandlers(handlers...),
//	)
//
// The first middleware in the list is the outermost: it sees the request
// first and the response last.
//
// # Error Handling
//
// Errors returned from handlers are converted exactly once, at the outer
// boundary of the chain. An HTTPError renders as
//
//	{"status":"error","code":404,"message":"product not found"}
//
// with its status code and any attached headers. Any other error renders as
// a generic 500 envelope; its details are logged, never sent to the client.
// Middleware between the handler and the boundary observes the original
// error value.
//
// # Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests and
// runs shutdown hooks in order.
//
//	err := app.Run(":8080",
//	    anvil.Logger(log),
//	    anvil.ShutdownTimeout(15*time.Second),
//	    anvil.StartupHook(func(ctx context.Context) error {
//	        return db.Migrate(ctx, pool, migrations, "schema_migrations", log)
//	    }),
//	    anvil.ShutdownHook(db.Shutdown(pool)),
//	)
package anvil
