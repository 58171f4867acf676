package internal

import (
	"fmt"
	"sync"
)

// Registry maps string keys to handler functions. It replaces reflective
// controller lookup with an explicit table: route declarations reference
// handlers by key, and the registry resolves them to typed HandlerFuncs.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register binds a key to a handler. Re-registering a key replaces the
// previous handler.
func (r *Registry) Register(key string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = h
}

// Resolve returns the handler bound to key.
func (r *Registry) Resolve(key string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[key]
	return h, ok
}

// Handler returns a HandlerFunc that resolves key at call time, so routes
// can be declared before every handler is registered. A key that is still
// unresolved when a request arrives yields a 500 without exposing the key
// to the client.
func (r *Registry) Handler(key string) HandlerFunc {
	return func(c Context) error {
		h, ok := r.Resolve(key)
		if !ok {
			return ErrInternal("internal server error",
				WithError(fmt.Errorf("no handler registered for key %q", key)))
		}
		return h(c)
	}
}
