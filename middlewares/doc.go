// Package middlewares provides HTTP middleware for Anvil applications.
//
// # Request ID
//
// RequestID assigns a unique ID to each request for tracing and debugging.
// It checks incoming headers for existing IDs or generates a UUID.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// Use RequestIDExtractor() with WithLogger for automatic request_id in all logs:
//
//	app := anvil.New(
//	    anvil.WithLogger("api", middlewares.RequestIDExtractor()),
//	    anvil.WithMiddleware(
//	        middlewares.RequestID(),
//	    ),
//	)
//
// # Logging
//
// Logging writes one access log line per request through the request-scoped
// logger. The level tracks the response class: Info below 400, Warn for 4xx,
// Error for 5xx.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.Logging(
//	            middlewares.WithLoggingSkipPaths("/health/live", "/health/ready"),
//	        ),
//	    ),
//	)
//
// # Recover
//
// Recover catches panics and converts them to a 500 response wrapping a typed
// [PanicError]. Clients receive the opaque JSON envelope; the panic value and
// stack go to the log.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.Recover(),
//	    ),
//	)
//
// # Timeout
//
// Timeout enforces a per-request deadline and responds 504 wrapping a typed
// [TimeoutError] on expiry. The handler goroutine keeps running after the
// deadline, so long work should watch [GetTimeoutContext] to stop early.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.Timeout(5*time.Second),
//	    ),
//	)
//
// # CORS
//
// CORS handles Cross-Origin Resource Sharing headers. It answers preflight
// (OPTIONS) requests and adds CORS headers to all responses.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.CORS(
//	            middlewares.WithAllowOrigins("https://app.example.com"),
//	            middlewares.WithAllowCredentials(),
//	        ),
//	    ),
//	)
//
// Use dynamic origin validation:
//
//	middlewares.CORS(
//	    middlewares.WithAllowOriginFunc(func(origin string) bool {
//	        return strings.HasSuffix(origin, ".example.com")
//	    }),
//	)
//
// # JWT
//
// JWT extracts a bearer token, validates it against a [jwt.Service], and
// stores typed claims in the context for [GetJWTClaims].
//
//	svc, _ := jwt.New(cfg.JWTSecret)
//	r.Route("/admin", func(r anvil.Router) {
//	    r.Use(middlewares.JWT[adminClaims](svc))
//	    r.GET("/stats", h.stats)
//	})
//
// # Rate Limit
//
// RateLimit enforces a per-client token bucket and answers 429 with a
// Retry-After header when a client exceeds it. Clients are keyed by IP, or
// by anything else via WithRateLimitKeyFunc.
//
//	app := anvil.New(
//	    anvil.WithMiddleware(
//	        middlewares.RateLimit(10, 20),
//	    ),
//	)
//
// # Metrics
//
// Metrics records Prometheus counters and histograms for every request,
// labeled by method, matched route pattern, and status. Mount its registry
// to expose them:
//
//	m := middlewares.NewMetrics()
//	app := anvil.New(
//	    anvil.WithMiddleware(m.Middleware()),
//	    anvil.WithMount("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})),
//	)
//
// # Recommended Middleware Order
//
//	anvil.WithMiddleware(
//	    middlewares.RequestID(),  // first: assign ID for all subsequent logging
//	    middlewares.Logging(),    // outside Recover so panics still get an access line
//	    m.Middleware(),           // metrics see the final status
//	    middlewares.CORS(),       // handle preflight before heavier work
//	    middlewares.RateLimit(10, 20),
//	    middlewares.Recover(),    // catch panics from timeout and handlers
//	    middlewares.Timeout(5*time.Second),
//	)
package middlewares
