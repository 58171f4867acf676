package middlewares

import (
	"net/http"
	"runtime"

	"github.com/dmitrymomot/anvil/internal"
)

// DefaultStackSize bounds how many bytes of stack a recovered panic keeps.
const DefaultStackSize = 4096

// RecoverConfig controls stack capture for recovered panics.
type RecoverConfig struct {
	StackSize         int  // capture buffer in bytes
	DisablePrintStack bool // skip stack capture entirely
}

// RecoverOption adjusts a RecoverConfig before the middleware is built.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize overrides the stack capture buffer size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables stack capture and logging.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that converts panics into a 500 response.
// The panic is logged at error level, the stack at debug level, and the
// handler chain sees a regular HTTPError wrapping a [PanicError], so clients
// get the opaque JSON envelope and never the panic value.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr := &PanicError{Value: r}
					if !cfg.DisablePrintStack {
						stack := make([]byte, cfg.StackSize)
						stack = stack[:runtime.Stack(stack, false)]
						perr.Stack = stack
						c.LogDebug("panic stack", "stack", string(stack))
					}
					c.LogError("panic recovered", "panic", r)

					err = internal.NewHTTPError(
						http.StatusInternalServerError,
						"internal server error",
						internal.WithError(perr),
					)
				}
			}()

			return next(c)
		}
	}
}
