// Package metrics provides Prometheus metrics collection for the combination service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Enumeration outcome labels.
const (
	StatusSuccess   = "success"
	StatusTruncated = "truncated"
	StatusCached    = "cached"
	StatusRejected  = "rejected"
	StatusCanceled  = "canceled"
	StatusError     = "error"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// EnumerationsTotal tracks enumerations by outcome.
	EnumerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "combination_enumerations_total",
			Help: "Total number of combination enumerations",
		},
		[]string{"status"},
	)

	// EnumerationDuration tracks how long a search takes.
	EnumerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "combination_enumeration_duration_seconds",
			Help:    "Combination enumeration duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	// CombinationsEmitted counts combinations produced across all searches.
	CombinationsEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "combinations_emitted_total",
			Help: "Total number of combinations emitted",
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState exposes breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// AsyncLogEntriesTotal tracks async log writer outcomes.
	AsyncLogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_log_entries_total",
			Help: "Total number of async log entries by result",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordEnumeration records the outcome of one enumeration.
func RecordEnumeration(duration time.Duration, status string, combinations int) {
	EnumerationDuration.Observe(duration.Seconds())
	EnumerationsTotal.WithLabelValues(status).Inc()
	if combinations > 0 {
		CombinationsEmitted.Add(float64(combinations))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState records the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAsyncLogEntry records an async log writer outcome.
func RecordAsyncLogEntry(result string) {
	AsyncLogEntriesTotal.WithLabelValues(result).Inc()
}
