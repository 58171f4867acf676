// Package internal provides the core types and implementation for the Anvil framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/anvil"
// instead, which re-exports the public API.
//
// # Core Types
//
// The package defines the fundamental types that users interact with:
//
//   - App: Orchestrates the application lifecycle, HTTP routing, and graceful shutdown
//   - Context: Provides request/response access, binding, and helper methods
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - ErrorHandler: Custom error handling function for handler errors
//   - Registry: Named handler registration for declarative route wiring
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context. The Deadline, Done, Err, and Value
// methods delegate to the underlying request context:
//
//	func (h *Handler) getProduct(c anvil.Context) error {
//	    // Pass c directly to database calls, HTTP clients, etc.
//	    product, err := h.repo.GetProduct(c, productID)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(200, product)
//	}
//
// # Application Structure
//
// Create an application with New() and configure it using options:
//
//	app := internal.New(
//	    internal.WithHandlers(productHandler, orderHandler),
//	    internal.WithMiddleware(loggingMiddleware, recoverMiddleware),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("db", dbCheck)),
//	)
//
// # Handler Pattern
//
// Handlers implement the Handler interface and declare routes:
//
//	type ProductHandler struct {
//	    crud *sqlkit.CRUD
//	}
//
//	func (h *ProductHandler) Routes(r internal.Router) {
//	    r.GET("/products", h.listProducts)
//	    r.POST("/products", h.createProduct)
//	}
//
// Handlers receive dependencies via constructor injection, not context helpers.
// This keeps handler logic explicit and testable.
//
// # Routing
//
// Routes are matched against the request path in registration order. A pattern
// is a sequence of segments where {name} captures exactly one non-empty path
// segment:
//
//	r.GET("/products/{id}", h.getProduct)
//
// The first registered pattern whose shape matches the path decides the
// outcome: if it carries a handler for the request method the handler runs,
// otherwise the request ends with 405 Method Not Allowed and an Allow header
// listing the methods the pattern does support. Patterns registered later are
// not consulted after a shape match. Handlers mounted with Mount are a
// fallback tier, consulted only when no pattern matches.
//
// # Request Pipeline
//
// Middleware wraps handlers in registration order, so the first middleware
// passed to WithMiddleware is the outermost layer. A handler error unwinds
// through every installed middleware before the framework converts it to a
// response, and the conversion happens exactly once per request:
//
//	app := internal.New(
//	    internal.WithMiddleware(first, second), // first wraps second wraps routing
//	)
//
// # Error Handling
//
// Handlers return errors instead of writing error responses directly. The
// framework renders HTTPError values with their status code and message, and
// converts everything else into an opaque 500 response after logging the
// cause:
//
//	func (h *Handler) getProduct(c internal.Context) error {
//	    product, err := h.repo.GetProduct(c, c.Param("id"))
//	    if err != nil {
//	        return internal.ErrNotFound("product not found")
//	    }
//	    return c.JSON(200, product)
//	}
package internal
