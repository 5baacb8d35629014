// Package metrics holds the Prometheus instruments for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
}

// New creates and registers all metrics on the given registerer. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jirantetangga_http_requests_total",
			Help: "Total HTTP requests handled, labeled by module and status class.",
		}, []string{"module", "status"}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jirantetangga_http_request_duration_seconds",
			Help:    "HTTP request latency by module.",
			Buckets: prometheus.DefBuckets,
		}, []string{"module"}),
	}
}

// Observe records one handled request.
func (m *Metrics) Observe(module, statusClass string, seconds float64) {
	m.RequestsTotal.WithLabelValues(module, statusClass).Inc()
	m.RequestLatency.WithLabelValues(module).Observe(seconds)
}
