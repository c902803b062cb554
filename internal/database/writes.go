// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Movie is one row of the movies table.
type Movie struct {
	ID     int
	Title  string
	Genres string // pipe-separated, as in MovieLens movies.csv
}

// Link carries external identifiers for a movie.
type Link struct {
	MovieID int
	IMDbID  string
	TMDbID  int // 0 when unknown
}

// Rating is one explicit user rating.
type Rating struct {
	UserID  int
	MovieID int
	Score   float64
	RatedAt time.Time
}

// Tag is one free-text tag applied by a user to a movie.
type Tag struct {
	UserID   int
	MovieID  int
	Tag      string
	TaggedAt time.Time
}

// UpsertMovies inserts movies, replacing title and genres of existing ids.
// The batch is written in one transaction.
func (db *DB) UpsertMovies(ctx context.Context, movies []Movie) (n int, err error) {
	defer timeQuery("upsert", "movies", &err)()

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO movies (movie_id, title, genres) VALUES (?, ?, ?)
			ON CONFLICT (movie_id) DO UPDATE SET title = excluded.title, genres = excluded.genres`)
		if err != nil {
			return err
		}
		defer closeWithLog(stmt, "prepared statement")

		for _, m := range movies {
			if _, err := stmt.ExecContext(ctx, m.ID, m.Title, m.Genres); err != nil {
				return fmt.Errorf("movie %d: %w", m.ID, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("upsert movies: %w", err)
	}
	return n, nil
}

// UpsertLinks sets the external ids of existing movies. Links for unknown
// movies are ignored and not counted.
func (db *DB) UpsertLinks(ctx context.Context, links []Link) (n int, err error) {
	defer timeQuery("update", "movies", &err)()

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `UPDATE movies SET imdb_id = ?, tmdb_id = ? WHERE movie_id = ?`)
		if err != nil {
			return err
		}
		defer closeWithLog(stmt, "prepared statement")

		for _, l := range links {
			var tmdb any
			if l.TMDbID > 0 {
				tmdb = l.TMDbID
			}
			res, err := stmt.ExecContext(ctx, nullIfEmpty(l.IMDbID), tmdb, l.MovieID)
			if err != nil {
				return fmt.Errorf("link for movie %d: %w", l.MovieID, err)
			}
			if affected, _ := res.RowsAffected(); affected > 0 {
				n++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("upsert links: %w", err)
	}
	return n, nil
}

// InsertRatings stores ratings, replacing an existing rating of the same
// (user, movie) pair, and registers unseen users.
func (db *DB) InsertRatings(ctx context.Context, ratings []Rating) (n int, err error) {
	defer timeQuery("insert", "ratings", &err)()

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		if err := ensureUsers(ctx, tx, ratingUsers(ratings)); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO ratings (user_id, movie_id, rating, rated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT (user_id, movie_id) DO UPDATE SET rating = excluded.rating, rated_at = excluded.rated_at`)
		if err != nil {
			return err
		}
		defer closeWithLog(stmt, "prepared statement")

		for _, r := range ratings {
			if _, err := stmt.ExecContext(ctx, r.UserID, r.MovieID, r.Score, r.RatedAt.UTC()); err != nil {
				return fmt.Errorf("rating (%d, %d): %w", r.UserID, r.MovieID, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("insert ratings: %w", err)
	}
	return n, nil
}

// InsertTags appends tags and registers unseen users.
func (db *DB) InsertTags(ctx context.Context, tags []Tag) (n int, err error) {
	defer timeQuery("insert", "tags", &err)()

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		users := make([]int, len(tags))
		for i, t := range tags {
			users[i] = t.UserID
		}
		if err := ensureUsers(ctx, tx, users); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO tags (user_id, movie_id, tag, tagged_at) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer closeWithLog(stmt, "prepared statement")

		for _, t := range tags {
			if _, err := stmt.ExecContext(ctx, t.UserID, t.MovieID, t.Tag, t.TaggedAt.UTC()); err != nil {
				return fmt.Errorf("tag (%d, %d): %w", t.UserID, t.MovieID, err)
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("insert tags: %w", err)
	}
	return n, nil
}

// AddGenreLike records that the user likes genre. Repeating it is a no-op.
func (db *DB) AddGenreLike(ctx context.Context, userID int, genre string) (err error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return fmt.Errorf("add genre like: empty genre")
	}
	defer timeQuery("insert", "genre_likes", &err)()

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		if err := ensureUsers(ctx, tx, []int{userID}); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO genre_likes (user_id, genre) VALUES (?, ?) ON CONFLICT DO NOTHING`, userID, genre)
		return err
	})
	if err != nil {
		return fmt.Errorf("add genre like: %w", err)
	}
	return nil
}

// ClearAll deletes every row of every data table. The schema is kept.
func (db *DB) ClearAll(ctx context.Context) (err error) {
	defer timeQuery("delete", "all", &err)()

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"tags", "ratings", "genre_likes", "users", "movies"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	return nil
}

// Counts holds the row count of each data table.
type Counts struct {
	Movies     int64 `json:"movies"`
	Users      int64 `json:"users"`
	Ratings    int64 `json:"ratings"`
	Tags       int64 `json:"tags"`
	GenreLikes int64 `json:"genre_likes"`
}

// RecordCounts returns the row count of each data table.
func (db *DB) RecordCounts(ctx context.Context) (c Counts, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	defer timeQuery("count", "all", &err)()

	err = db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM movies),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM ratings),
			(SELECT COUNT(*) FROM tags),
			(SELECT COUNT(*) FROM genre_likes)`).
		Scan(&c.Movies, &c.Users, &c.Ratings, &c.Tags, &c.GenreLikes)
	if err != nil {
		return Counts{}, fmt.Errorf("count records: %w", err)
	}
	return c, nil
}

// inTx runs fn inside a transaction, committing on success.
func (db *DB) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ensureUsers inserts any user ids not yet present.
func ensureUsers(ctx context.Context, tx *sql.Tx, userIDs []int) error {
	seen := make(map[int]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (user_id) VALUES (?) ON CONFLICT DO NOTHING`, id); err != nil {
			return fmt.Errorf("register user %d: %w", id, err)
		}
	}
	return nil
}

func ratingUsers(ratings []Rating) []int {
	users := make([]int, len(ratings))
	for i, r := range ratings {
		users[i] = r.UserID
	}
	return users
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
