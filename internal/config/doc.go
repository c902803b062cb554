// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package config loads reelrank's configuration with Koanf v2.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
//     /etc/reelrank/config.yaml
//  3. Environment variables from an explicit allow-list (envTransformFunc)
//
// The result is validated before it is returned.
//
// # Sections
//
//   - database: DuckDB file, memory limit and threads
//   - server: HTTP listener and timeouts
//   - logging: zerolog level and format
//   - recommend: neighbourhood size, thresholds, pool sizes and list limits
//   - model: latent-factor model directory and training hyperparameters
//   - ingest: MovieLens CSV loader
//   - cache: item metadata cache (memory or redis)
//   - breaker: circuit breaker around the recommendation store
//   - security: CORS and per-IP rate limiting
//
// # Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("load config")
//	}
//	db, err := database.New(&cfg.Database)
//
// # Environment Variables
//
//	DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
//	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, HTTP_REQUEST_TIMEOUT, ENVIRONMENT
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//	RECOMMEND_NEIGHBORHOOD_SIZE, RECOMMEND_HIGH_RATING_THRESHOLD, ...
//	MODEL_DIR, MODEL_NAME, MODEL_TRAIN_ON_STARTUP, MODEL_FACTORS, ...
//	INGEST_ENABLED, INGEST_DATA_DIR, INGEST_WORKERS, INGEST_MAX_RATINGS, ...
//	CACHE_BACKEND, CACHE_CAPACITY, CACHE_TTL, REDIS_ADDR, REDIS_DB
//	BREAKER_ENABLED, BREAKER_TIMEOUT, ...
//	CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//
// See envTransformFunc for the complete list.
package config
