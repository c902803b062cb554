// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the recommendation service:
// - Recommendation requests by path (hybrid, cold_start)
// - Latent-factor prediction failures
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Item metadata cache efficiency
// - Circuit breaker state
// - Bulk ingestion progress

var (
	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelrank_recommendation_requests_total",
			Help: "Total number of recommendation requests by path and outcome",
		},
		[]string{"path", "outcome"}, // path: "hybrid", "cold_start"; outcome: "success", "error"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelrank_recommendation_duration_seconds",
			Help:    "Duration of recommendation computation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	RecommendationListSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelrank_recommendation_list_size",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 12, 20, 50, 100},
		},
		[]string{"path"},
	)

	PredictionsUnavailable = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelrank_predictions_unavailable_total",
			Help: "Total number of (user, item) predictions skipped because the model could not score them",
		},
	)

	NeighborhoodSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelrank_collaborative_neighborhood_size",
			Help:    "Number of similar users selected for collaborative filtering",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of active API requests",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Ingestion Metrics
	IngestRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelrank_ingest_records_total",
			Help: "Total number of dataset records processed during bulk ingestion",
		},
		[]string{"file", "result"}, // result: "imported", "skipped", "error"
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelrank_ingest_duration_seconds",
			Help:    "Duration of a full bulk ingestion run in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)
)

// Recommendation path labels.
const (
	PathHybrid    = "hybrid"
	PathColdStart = "cold_start"
)

// RecordRecommendation records the outcome of one recommendation request.
func RecordRecommendation(path string, size int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	RecommendationRequests.WithLabelValues(path, outcome).Inc()
	RecommendationDuration.WithLabelValues(path).Observe(duration.Seconds())
	if err == nil {
		RecommendationListSize.WithLabelValues(path).Observe(float64(size))
	}
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := errorLabel(err)
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// errorLabel keeps cancellation distinguishable from genuine query failures.
func errorLabel(err error) string {
	var timeout interface{ Timeout() bool }
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &timeout) && timeout.Timeout():
		return "timeout"
	default:
		return err.Error()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a hit or miss for the named cache.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordIngest records the per-file outcome counts of an ingestion batch.
func RecordIngest(file string, imported, skipped, failed int) {
	IngestRecords.WithLabelValues(file, "imported").Add(float64(imported))
	IngestRecords.WithLabelValues(file, "skipped").Add(float64(skipped))
	IngestRecords.WithLabelValues(file, "error").Add(float64(failed))
}
