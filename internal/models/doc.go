// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package models defines the JSON shapes served by the HTTP API.

Every endpoint answers with an APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-06-01T12:00:00Z", "query_time_ms": 12}
	}

Failed requests carry "status": "error" and an APIError with a
machine-readable code (VALIDATION_ERROR, RECOMMENDATION_FAILED, ...).

The package has no dependencies on the engine; handlers convert
recommend.Result values into RecommendationResponse.
*/
package models
