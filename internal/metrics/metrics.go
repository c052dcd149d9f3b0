// Package metrics defines the Prometheus instrumentation for streamgate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamgate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamgate_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streamgate_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Resolution metrics
var (
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamgate_extractions_total",
			Help: "Total number of embed resolutions by provider and result (success, failure, or cached)",
		},
		[]string{"provider", "result"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamgate_extraction_duration_seconds",
			Help:    "Embed resolution duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)
)

// Relay metrics
var (
	RelayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamgate_relay_requests_total",
			Help: "Total number of relay requests by upstream status",
		},
		[]string{"status"},
	)

	RelayBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "streamgate_relay_bytes_total",
			Help: "Total number of media bytes relayed to clients",
		},
	)
)
