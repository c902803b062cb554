// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package api serves the recommendation engine over HTTP using the chi router.

Routes:

	GET /api/v1/recommendations?user_id=&limit=   recommendations for a user
	GET /recommendations?user_id=&limit=          same handler, legacy path
	GET /health/live                              process liveness
	GET /health/ready                             database reachability
	GET /metrics                                  Prometheus exposition

user_id is required and must be a positive integer. limit is optional; when
omitted the engine picks the default of the path it takes (12 for existing
users, 10 for new users). An explicit limit must lie in 1..max_limit.

Every JSON response uses the models.APIResponse envelope. Validation
failures answer 400 VALIDATION_ERROR. A failed storage call answers 503
RECOMMENDATION_FAILED so load balancers can retry elsewhere.

Middleware order: request id, access log, real IP, panic recovery, CORS,
Prometheus metrics. Recommendation routes are additionally rate limited per
client IP with go-chi/httprate, and each recommendation request runs under
its own timeout (server.request_timeout).
*/
package api
