package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of handled HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ExternalRequestsTotal counts calls to external services by outcome.
	// Outcomes: "success", "no_match", "error".
	ExternalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_requests_total",
			Help: "Total number of external service calls",
		},
		[]string{"service", "outcome"},
	)

	// PriceReconciliationsTotal counts reconciliation outcomes.
	// Outcomes: "full", "primary_only", "none".
	PriceReconciliationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_reconciliations_total",
			Help: "Total number of completed price reconciliations",
		},
		[]string{"outcome"},
	)

	// RelatedSampleSize observes the size of produced related-game samples
	RelatedSampleSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "related_sample_size",
			Help:    "Number of related-game ids returned per sample",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)
)
