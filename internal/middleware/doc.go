// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware has the func(http.Handler) http.Handler shape used by chi:

  - RequestID assigns or propagates X-Request-ID and seeds the logging context
  - AccessLog writes one structured log line per request
  - PrometheusMetrics records api_requests_total, api_request_duration_seconds
    and api_active_requests

PrometheusMetrics labels requests with the chi route pattern rather than the
raw path, so /api/v1/recommendations?user_id=1 and ?user_id=2 share a series.
Requests that match no route are labelled "unmatched".

Order matters: RequestID must run first so later middleware and handlers can
read the id from the context.

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
