// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto at
package initialization and exposed by the API router at /metrics.

# Available Metrics

Recommendation Metrics:
  - reelrank_recommendation_requests_total: Requests by path and outcome (counter)
    Labels: path (hybrid, cold_start), outcome (success, error)
  - reelrank_recommendation_duration_seconds: Computation latency (histogram)
    Labels: path
  - reelrank_recommendation_list_size: Items returned per request (histogram)
    Labels: path
  - reelrank_predictions_unavailable_total: Skipped model predictions (counter)
  - reelrank_collaborative_neighborhood_size: Similar users selected (histogram)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type (truncated to 50 chars)

API Metrics:
  - api_requests_total, api_request_duration_seconds, api_active_requests

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total
    Labels: cache_type

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge, 0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total: Labels name, result (success, failure, rejected)
  - circuit_breaker_state_transitions_total: Labels name, from_state, to_state

Ingestion Metrics:
  - reelrank_ingest_records_total: Labels file, result (imported, skipped, error)
  - reelrank_ingest_duration_seconds: Full run duration (histogram)

Example PromQL queries:

	# Cold-start share of traffic
	sum(rate(reelrank_recommendation_requests_total{path="cold_start"}[5m]))
	  / sum(rate(reelrank_recommendation_requests_total[5m]))

	# Metadata cache hit rate
	sum(rate(cache_hits_total{cache_type="item_metadata"}[5m]))
	  / (sum(rate(cache_hits_total{cache_type="item_metadata"}[5m])) + sum(rate(cache_misses_total{cache_type="item_metadata"}[5m])))

# Thread Safety

All metric recording functions are safe for concurrent use. The Prometheus
client library handles synchronization internally.
*/
package metrics
