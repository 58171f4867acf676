package internal

// Handler groups related routes behind one Routes method, so features
// register themselves instead of being listed at the composition root.
//
// Example:
//
//	type ProductHandler struct {
//	    crud *sqlkit.CRUD
//	}
//
//	func (h *ProductHandler) Routes(r anvil.Router) {
//	    r.GET("/products", h.list)
//	    r.POST("/products", h.create)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves one request. A non-nil return travels back up the
// middleware chain until something converts it into a response.
type HandlerFunc func(c Context) error

// Middleware decorates a HandlerFunc. A stage may rewrite the request,
// answer it outright, or act on the error coming back from next.
//
// Example:
//
//	func Auth(next anvil.HandlerFunc) anvil.HandlerFunc {
//	    return func(c anvil.Context) error {
//	        if !isAuthenticated(c) {
//	            return anvil.ErrUnauthorized("login required")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler turns a handler error into a response. Returning a non-nil
// error falls through to the built-in rendering.
type ErrorHandler func(Context, error) error

// applyMiddleware folds the middleware list around next so the first entry
// is the outermost stage: it sees the request first and the response last.
func applyMiddleware(next HandlerFunc, mws []Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		next = mws[i](next)
	}
	return next
}
