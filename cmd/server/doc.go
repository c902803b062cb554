// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package main is the entry point for the reelrank recommendation server.

reelrank serves hybrid movie recommendations over HTTP. Users with history
get a blend of collaborative filtering (cosine-similar neighbours scored by
a latent-factor model) and content-based genre matching; new users get a
shuffled mix of popular, trending and diverse titles.

# Startup

Components are initialized in this order:

 1. Configuration: Koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog, with an slog bridge for the supervisor
 3. Database: DuckDB with versioned migrations
 4. Store decorators: item metadata cache (memory or Redis), circuit breaker
 5. Model: latest stored latent-factor model, or train one when allowed
 6. Recommender and HTTP API
 7. Supervisor tree: HTTP server, optional ingest, optional retraining

# Supervisor Tree

	RootSupervisor ("reelrank")
	├── DataSupervisor ("data-layer")
	│   ├── IngestService (INGEST_ENABLED=true)
	│   └── RetrainService (MODEL_RETRAIN_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Endpoints

	GET /api/v1/recommendations?user_id=42&limit=10
	GET /recommendations?user_id=42
	GET /health/live
	GET /health/ready
	GET /metrics

# Example

	export DUCKDB_PATH=/data/reelrank.duckdb
	export INGEST_ENABLED=true
	export INGEST_DATA_DIR=/data/ml-latest-small
	./reelrank

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests, an interrupted ingest keeps its checkpoint for the next start, and
the database is closed last.
*/
package main
