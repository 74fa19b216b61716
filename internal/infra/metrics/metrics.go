// Package metrics exposes Prometheus collectors for the authentication flows.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quizauth/internal/domain/service"
)

// OutcomeSuccess labels an operation that completed without error.
const OutcomeSuccess = "success"

// Metrics holds the service's collectors and the registry they are registered on.
type Metrics struct {
	registry     *prometheus.Registry
	authRequests *prometheus.CounterVec
	hashDuration *prometheus.HistogramVec
}

var _ service.AuthMetrics = (*Metrics)(nil)

// New creates a dedicated registry with Go and process collectors plus the auth metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		authRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizauth_auth_requests_total",
				Help: "Total number of authentication operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		hashDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quizauth_password_hash_duration_seconds",
				Help:    "Duration of bcrypt hash and compare calls in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(m.authRequests, m.hashDuration)

	return m
}

// ObserveRequest increments the operation counter.
func (m *Metrics) ObserveRequest(operation, outcome string) {
	m.authRequests.WithLabelValues(operation, outcome).Inc()
}

// ObservePasswordHash records one hashing call.
func (m *Metrics) ObservePasswordHash(operation string, elapsed time.Duration) {
	m.hashDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
