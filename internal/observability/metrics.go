package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Thought store operation latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "driver"},
	)

	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Total number of failed thought store operations",
		},
		[]string{"operation", "driver"},
	)

	// Domain metrics
	ThoughtsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thoughts_created_total",
			Help: "Total number of thoughts created",
		},
	)

	ThoughtLikesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thought_likes_total",
			Help: "Total number of hearts given to thoughts",
		},
	)
)

// ObserveStoreOperation records the latency of a store call started at start.
// A non-nil err also counts towards store_errors_total.
func ObserveStoreOperation(operation, driver string, start time.Time, err error) {
	StoreOperationDuration.WithLabelValues(operation, driver).Observe(time.Since(start).Seconds())
	if err != nil {
		StoreErrorsTotal.WithLabelValues(operation, driver).Inc()
	}
}
