// Package metrics provides Prometheus metrics for the engine's HTTP surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the server.
type Metrics struct {
	EstimatesTotal   *prometheus.CounterVec
	SubmissionsTotal *prometheus.CounterVec
	EmailsTotal      *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		EstimatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "psx_estimates_total",
				Help: "Total number of priced estimates by kind.",
			},
			[]string{"kind"},
		),
		SubmissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "psx_submissions_total",
				Help: "Total number of intake submissions by type and status.",
			},
			[]string{"type", "status"},
		),
		EmailsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "psx_emails_total",
				Help: "Total number of email dispatch attempts by kind and status.",
			},
			[]string{"kind", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "psx_http_request_duration_seconds",
				Help:    "HTTP request duration by route and status code.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "code"},
		),
		registry: reg,
	}

	reg.MustRegister(m.EstimatesTotal)
	reg.MustRegister(m.SubmissionsTotal)
	reg.MustRegister(m.EmailsTotal)
	reg.MustRegister(m.RequestDuration)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordEstimate increments the estimate counter.
func (m *Metrics) RecordEstimate(kind string) {
	m.EstimatesTotal.WithLabelValues(kind).Inc()
}

// RecordSubmission increments the submission counter.
func (m *Metrics) RecordSubmission(submissionType, status string) {
	m.SubmissionsTotal.WithLabelValues(submissionType, status).Inc()
}

// RecordEmail increments the email counter.
func (m *Metrics) RecordEmail(kind, status string) {
	m.EmailsTotal.WithLabelValues(kind, status).Inc()
}

// ObserveRequest records an HTTP request duration.
func (m *Metrics) ObserveRequest(route, code string, seconds float64) {
	m.RequestDuration.WithLabelValues(route, code).Observe(seconds)
}
