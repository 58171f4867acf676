// Package health provides HTTP handlers for liveness and readiness probes.
//
// The handlers are plain http.HandlerFunc values compatible with Docker,
// Kubernetes and third-party monitors. Checks are ordinary
// func(context.Context) error closures, like the pool ping from pkg/db.
//
// # Quick Start
//
// The app wires both endpoints automatically; add named readiness checks
// through its options:
//
//	app, err := anvil.New(
//	    anvil.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	)
//
// The handlers also mount on any plain router:
//
//	mux.Handle("/health/live", health.LivenessHandler())
//	mux.Handle("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	}))
//
// # Response Formats
//
// Responses default to plain text for probe compatibility: "OK" with 200, or
// "Service Unavailable" with 503. Request JSON with Accept: application/json
// or ?format=json:
//
//	curl http://localhost:8080/health/ready?format=json
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "postgres": {"status": "healthy"},
//	    "cache":    {"status": "unhealthy", "error": "connection refused"}
//	  }
//	}
//
// # Configuration
//
// Checks run in parallel under a shared deadline (5s default):
//
//	health.ReadinessHandler(checks,
//	    health.WithTimeout(3*time.Second),
//	    health.WithLogger(log),
//	)
//
// A check that overruns the deadline is reported as [ErrCheckTimeout].
//
// # Non-HTTP Use
//
// [Healthy] runs the same checks and returns an error instead of writing a
// response. It returns nil when everything passes, or [ErrCheckFailed] joined
// with each failing check's error, which suits CLI healthcheck commands:
//
//	HEALTHCHECK CMD ["/app/products-api", "healthcheck"]
//
// # Kubernetes Configuration
//
// Example probe configuration:
//
//	livenessProbe:
//	  httpGet:
//	    path: /health/live
//	    port: 8080
//	  initialDelaySeconds: 5
//	  periodSeconds: 10
//
//	readinessProbe:
//	  httpGet:
//	    path: /health/ready
//	    port: 8080
//	  initialDelaySeconds: 5
//	  periodSeconds: 10
package health
