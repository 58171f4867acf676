package middlewares

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/anvil/internal"
)

// MetricsConfig configures the metrics collectors.
type MetricsConfig struct {
	Namespace string // prefix for metric names, e.g. "shop" -> shop_http_requests_total
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace prefixes all metric names with the given namespace.
func WithMetricsNamespace(ns string) MetricsOption {
	return func(cfg *MetricsConfig) {
		cfg.Namespace = ns
	}
}

// Metrics holds Prometheus collectors for HTTP traffic. It owns a private
// registry so framework metrics never collide with an application's default
// registry; expose them by mounting promhttp.HandlerFor(m.Registry(), ...).
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	responseSize     *prometheus.HistogramVec
}

// NewMetrics creates the collector set on a fresh registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := &MetricsConfig{}

	for _, opt := range opts {
		opt(cfg)
	}

	registry := prometheus.NewRegistry()

	return &Metrics{
		registry: registry,
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestsInFlight: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		responseSize: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
	}
}

// Registry returns the private registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware returns the recording middleware. The path label uses the
// matched route pattern ("/users/{id}") so label cardinality stays bounded
// by the route table; only unmatched requests fall back to the raw path.
func (m *Metrics) Middleware() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			m.requestsInFlight.Inc()
			defer m.requestsInFlight.Dec()

			err := next(c)

			path := internal.RoutePattern(c)
			if path == "" {
				path = c.Request().URL.Path
			}
			method := c.Request().Method
			status := strconv.Itoa(loggedStatus(c, err))

			m.requestsTotal.WithLabelValues(method, path, status).Inc()
			m.requestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			if rw := c.ResponseWriter(); rw != nil {
				m.responseSize.WithLabelValues(method, path).Observe(float64(rw.Size()))
			}

			return err
		}
	}
}
