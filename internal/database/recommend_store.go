// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/recommend/latent"
)

// FetchRatingVector returns the ratings of one user keyed by movie id.
func (db *DB) FetchRatingVector(ctx context.Context, userID int) (vec recommend.RatingVector, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("select", "ratings", &err)()

	rows, err := db.conn.QueryContext(ctx, `SELECT movie_id, rating FROM ratings WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query ratings for user %d: %w", userID, err)
	}
	defer rows.Close()

	vec = make(recommend.RatingVector)
	for rows.Next() {
		var (
			movieID int
			rating  float64
		)
		if err = rows.Scan(&movieID, &rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		vec[movieID] = rating
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return vec, nil
}

// FetchAllOtherUsersRatingVectors returns the rating vector of every user
// except excludeUserID, ordered by user id.
func (db *DB) FetchAllOtherUsersRatingVectors(ctx context.Context, excludeUserID int) (out []recommend.UserRatings, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("select_others", "ratings", &err)()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, movie_id, rating FROM ratings WHERE user_id <> ? ORDER BY user_id, movie_id`,
		excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("query other users' ratings: %w", err)
	}
	defer rows.Close()

	out = make([]recommend.UserRatings, 0)
	for rows.Next() {
		var (
			userID, movieID int
			rating          float64
		)
		if err = rows.Scan(&userID, &movieID, &rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		if n := len(out); n == 0 || out[n-1].UserID != userID {
			out = append(out, recommend.UserRatings{UserID: userID, Ratings: make(recommend.RatingVector)})
		}
		out[len(out)-1].Ratings[movieID] = rating
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return out, nil
}

// FetchItemGenres returns the genres of each known movie in itemIDs.
func (db *DB) FetchItemGenres(ctx context.Context, itemIDs []int) (map[int][]string, error) {
	meta, err := db.FetchItemMetadata(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	genres := make(map[int][]string, len(meta))
	for id, m := range meta {
		genres[id] = m.Genres
	}
	return genres, nil
}

// FetchItemMetadata returns the title and genres of each known movie in itemIDs.
// Unknown ids are absent from the result.
func (db *DB) FetchItemMetadata(ctx context.Context, itemIDs []int) (out map[int]recommend.ItemMetadata, err error) {
	out = make(map[int]recommend.ItemMetadata, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("select_metadata", "movies", &err)()

	in, args := inClause(itemIDs)
	items, err := queryAndScan(ctx, db.conn,
		`SELECT movie_id, title, genres FROM movies WHERE movie_id IN `+in, args, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("query movie metadata: %w", err)
	}
	for _, item := range items {
		out[item.ItemID] = recommend.ItemMetadata{Title: item.Title, Genres: item.Genres}
	}
	return out, nil
}

// FetchItemsByGenre returns up to limit movies that share at least one genre
// with genres and have not been rated by excludeRatedBy.
func (db *DB) FetchItemsByGenre(ctx context.Context, genres []string, excludeRatedBy, limit int) (items []recommend.CandidateItem, err error) {
	if len(genres) == 0 || limit <= 0 {
		return []recommend.CandidateItem{}, nil
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("select_by_genre", "movies", &err)()

	placeholders, args := typedList(genres)
	args = append(args, excludeRatedBy, limit)

	query := `
		SELECT m.movie_id, m.title, m.genres
		FROM movies m
		WHERE list_has_any(string_split(m.genres, '|'), list_value(` + placeholders + `))
		  AND NOT EXISTS (
			SELECT 1 FROM ratings r WHERE r.user_id = ? AND r.movie_id = m.movie_id
		  )
		ORDER BY m.movie_id
		LIMIT ?`

	items, err = queryAndScan(ctx, db.conn, query, args, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("query movies by genre: %w", err)
	}
	return items, nil
}

// FetchPopularItems returns rated movies ordered by average rating, then by
// number of ratings.
func (db *DB) FetchPopularItems(ctx context.Context, limit int) (items []recommend.CandidateItem, err error) {
	if limit <= 0 {
		return []recommend.CandidateItem{}, nil
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("select_popular", "ratings", &err)()

	items, err = queryAndScan(ctx, db.conn, `
		SELECT m.movie_id, m.title, m.genres
		FROM movies m
		JOIN ratings r ON r.movie_id = m.movie_id
		GROUP BY m.movie_id, m.title, m.genres
		ORDER BY AVG(r.rating) DESC, COUNT(*) DESC, m.movie_id
		LIMIT ?`, []any{limit}, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("query popular movies: %w", err)
	}
	return items, nil
}

// FetchTrendingItems returns movies ordered by the number of ratings
// received in the last windowDays days.
func (db *DB) FetchTrendingItems(ctx context.Context, limit, windowDays int) (items []recommend.CandidateItem, err error) {
	if limit <= 0 {
		return []recommend.CandidateItem{}, nil
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("select_trending", "ratings", &err)()

	cutoff := db.now().UTC().Add(-time.Duration(windowDays) * 24 * time.Hour)

	items, err = queryAndScan(ctx, db.conn, `
		SELECT m.movie_id, m.title, m.genres
		FROM movies m
		JOIN ratings r ON r.movie_id = m.movie_id
		WHERE r.rated_at > ?
		GROUP BY m.movie_id, m.title, m.genres
		ORDER BY COUNT(*) DESC, m.movie_id
		LIMIT ?`, []any{cutoff, limit}, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("query trending movies: %w", err)
	}
	return items, nil
}

// FetchDiverseItems returns movies ordered by their genre string, which
// groups the catalog by genre combination.
func (db *DB) FetchDiverseItems(ctx context.Context, limit int) (items []recommend.CandidateItem, err error) {
	if limit <= 0 {
		return []recommend.CandidateItem{}, nil
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("select_diverse", "movies", &err)()

	items, err = queryAndScan(ctx, db.conn, `
		SELECT movie_id, title, genres
		FROM movies
		ORDER BY genres, movie_id
		LIMIT ?`, []any{limit}, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("query diverse movies: %w", err)
	}
	return items, nil
}

// HasAnyRating reports whether the user has rated at least one movie.
func (db *DB) HasAnyRating(ctx context.Context, userID int) (bool, error) {
	return db.exists(ctx, "ratings", `SELECT EXISTS (SELECT 1 FROM ratings WHERE user_id = ?)`, userID)
}

// HasAnyGenrePreference reports whether the user has liked at least one genre.
func (db *DB) HasAnyGenrePreference(ctx context.Context, userID int) (bool, error) {
	return db.exists(ctx, "genre_likes", `SELECT EXISTS (SELECT 1 FROM genre_likes WHERE user_id = ?)`, userID)
}

// HasAnyTag reports whether the user has tagged at least one movie.
func (db *DB) HasAnyTag(ctx context.Context, userID int) (bool, error) {
	return db.exists(ctx, "tags", `SELECT EXISTS (SELECT 1 FROM tags WHERE user_id = ?)`, userID)
}

func (db *DB) exists(ctx context.Context, table, query string, userID int) (found bool, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("exists", table, &err)()

	if err = db.conn.QueryRowContext(ctx, query, userID).Scan(&found); err != nil {
		return false, fmt.Errorf("check %s for user %d: %w", table, userID, err)
	}
	return found, nil
}

// AllRatings returns every rating ordered by user and movie, for model training.
func (db *DB) AllRatings(ctx context.Context) (out []latent.Rating, err error) {
	defer timeQuery("select_all", "ratings", &err)()

	// Training reads can exceed the default timeout; only the caller bounds them.
	out, err = queryAndScan(ctx, db.conn,
		`SELECT user_id, movie_id, rating FROM ratings ORDER BY user_id, movie_id`, nil,
		func(rows *sql.Rows) (latent.Rating, error) {
			var r latent.Rating
			err := rows.Scan(&r.UserID, &r.ItemID, &r.Score)
			return r, err
		})
	if err != nil {
		return nil, fmt.Errorf("query all ratings: %w", err)
	}
	return out, nil
}

// typedList returns "?::VARCHAR, ?::VARCHAR, ..." for values. Explicit casts
// let DuckDB infer the list element type of a prepared list_value.
func typedList(values []string) (string, []any) {
	placeholders := make([]byte, 0, len(values)*len("?::VARCHAR, "))
	args := make([]any, len(values))
	for i, v := range values {
		if i > 0 {
			placeholders = append(placeholders, ", "...)
		}
		placeholders = append(placeholders, "?::VARCHAR"...)
		args[i] = v
	}
	return string(placeholders), args
}
