// Package metrics provides Prometheus metrics for the Vinted scout service.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scout_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Vinted API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_vinted_requests_total",
			Help: "Vinted API requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	// Resolution Pipeline Metrics
	ResolveStagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scout_resolve_stages_total",
			Help: "Resolution pipeline stage outcomes",
		},
		[]string{"stage", "outcome"}, // outcome: "matched", "failed", "skipped"
	)

	ResolveNotFoundTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scout_resolve_not_found_total",
			Help: "Resolutions that exhausted every stage",
		},
	)

	ProbeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scout_probe_duration_seconds",
			Help:    "Time taken by one redirect probe attempt",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
	)
)
