package health

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// LivenessHandler returns an http.HandlerFunc that always responds OK,
// signalling only that the process is up.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler returns an http.HandlerFunc that runs all provided checks
// and answers 200 or 503, signalling whether the service can take traffic.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := checks.run(r.Context(), cfg)

		code := http.StatusOK
		if resp.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		respond(w, r, code, resp)
	}
}

// respond renders resp as JSON when the client asked for it and as a plain
// probe-friendly body otherwise.
func respond(w http.ResponseWriter, r *http.Request, code int, resp *Response) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.WriteHeader(code)
	if resp.Status == StatusHealthy {
		_, _ = io.WriteString(w, "OK")
	} else {
		_, _ = io.WriteString(w, "Service Unavailable")
	}
}

// wantsJSON reports whether the client asked for a JSON body. The query
// parameter wins so probes and humans can force it without headers.
func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
