// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package database provides the DuckDB-backed catalog and rating store.

DB implements recommend.Store, so the recommendation core reads user
ratings, movie metadata, popularity pools and engagement signals through
it. The bulk loader writes through the batch API in writes.go, and the
trainer reads the full rating matrix with AllRatings.

# Schema

Tables are created by versioned migrations (see migrations.go):

  - movies: movie_id, title, pipe-separated genres, imdb_id, tmdb_id
  - users: user_id, created_at
  - ratings: one row per (user_id, movie_id), rating in [0.5, 5], rated_at
  - tags: free-text tags applied by users to movies
  - genre_likes: explicit genre preferences

# Query Semantics

  - Popular: average rating descending, then rating count descending
  - Trending: count of ratings inside a trailing window, descending
  - Diverse: ordered by the genre string so the pool spans genres
  - Items by genre: share at least one genre and are not rated by the user
  - Signals: EXISTS checks on ratings, genre_likes and tags

All list queries add movie_id as the final sort key so results are
deterministic.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	rec, err := recommend.NewRecommender(db, model, recommend.DefaultConfig(), logger)

# Thread Safety

DB is safe for concurrent use. database/sql pools the DuckDB connections.

# Metrics

Every query records duckdb_query_duration_seconds and, on failure,
duckdb_query_errors_total, labelled by operation and table.
*/
package database
