package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter to track response status, size,
// and whether anything has been written yet. The error handler relies on
// Written to guarantee the error envelope is rendered at most once, and the
// mutex keeps that check safe when a timeout middleware races the handler
// goroutine against the deadline.
//
// Once the app finishes a request the writer is sealed: writes from a
// goroutine the timeout middleware abandoned are dropped with
// http.ErrHandlerTimeout instead of corrupting a response already on the wire.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
	sealed  bool
	mu      sync.Mutex
}

// NewResponseWriter wraps w, defaulting the status to 200 for handlers
// that write a body without calling WriteHeader.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

// WriteHeader records the status and forwards it downstream. Only the
// first call takes effect; later calls and sealed writers are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	if w.written || w.sealed {
		w.mu.Unlock()
		return
	}
	w.written = true
	w.status = code
	w.mu.Unlock()

	w.ResponseWriter.WriteHeader(code)
}

// Write sends body bytes, emitting the recorded status first when the
// handler never called WriteHeader. Sealed writers report
// http.ErrHandlerTimeout instead of touching the connection.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	if w.sealed {
		w.mu.Unlock()
		return 0, http.ErrHandlerTimeout
	}
	first := !w.written
	w.written = true
	w.mu.Unlock()

	if first {
		w.ResponseWriter.WriteHeader(w.status)
	}

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// seal closes the writer for good. The app calls it when the request is done
// so nothing can touch the connection afterwards.
func (w *ResponseWriter) seal() {
	w.mu.Lock()
	w.sealed = true
	w.mu.Unlock()
}

// Status returns the response status, 200 until a write decides otherwise.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns how many body bytes went out so far.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether a status or body has left already.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush forwards to the underlying flusher unless the writer is sealed.
func (w *ResponseWriter) Flush() {
	w.mu.Lock()
	if w.sealed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack exposes the connection when the underlying writer supports it,
// for handlers upgrading to WebSockets.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Push forwards HTTP/2 server push when the underlying writer supports it.
func (w *ResponseWriter) Push(target string, opts *http.PushOptions) error {
	if pusher, ok := w.ResponseWriter.(http.Pusher); ok {
		return pusher.Push(target, opts)
	}
	return http.ErrNotSupported
}

// Unwrap hands middleware the original writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
