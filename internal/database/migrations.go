// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelrank/internal/logging"
)

// Migration represents a versioned schema change.
type Migration struct {
	Version     int       // Unique, monotonically increasing
	Name        string    // Human-readable name
	Description string    // What this migration does
	SQL         []string  // Statements executed in order
	AppliedAt   time.Time // Populated when read back from schema_migrations
	indexOnly   bool      // Skipped when DatabaseConfig.SkipIndexes is set
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// migrations returns every schema migration in version order.
// Never edit an applied migration; append a new version instead.
func migrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Name:        "core_tables",
			Description: "Movies, users, ratings, tags and genre preferences",
			SQL: []string{
				`CREATE TABLE IF NOT EXISTS movies (
					movie_id INTEGER PRIMARY KEY,
					title TEXT NOT NULL,
					genres TEXT NOT NULL DEFAULT '',
					imdb_id TEXT,
					tmdb_id INTEGER
				)`,
				`CREATE TABLE IF NOT EXISTS users (
					user_id INTEGER PRIMARY KEY,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS ratings (
					user_id INTEGER NOT NULL,
					movie_id INTEGER NOT NULL,
					rating DOUBLE NOT NULL,
					rated_at TIMESTAMP NOT NULL,
					PRIMARY KEY (user_id, movie_id)
				)`,
				`CREATE TABLE IF NOT EXISTS tags (
					user_id INTEGER NOT NULL,
					movie_id INTEGER NOT NULL,
					tag TEXT NOT NULL,
					tagged_at TIMESTAMP NOT NULL
				)`,
				`CREATE TABLE IF NOT EXISTS genre_likes (
					user_id INTEGER NOT NULL,
					genre TEXT NOT NULL,
					PRIMARY KEY (user_id, genre)
				)`,
			},
		},
		{
			Version:     2,
			Name:        "lookup_indexes",
			Description: "Indexes for per-movie aggregates and per-user tag checks",
			SQL: []string{
				`CREATE INDEX IF NOT EXISTS idx_ratings_movie ON ratings(movie_id)`,
				`CREATE INDEX IF NOT EXISTS idx_tags_user ON tags(user_id)`,
			},
			indexOnly: true,
		},
	}
}

func (db *DB) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]Migration)
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[m.Version] = m
	}
	return applied, rows.Err()
}

// runVersionedMigrations applies every migration not yet recorded in
// schema_migrations, each inside its own transaction.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range migrations() {
		if _, exists := applied[m.Version]; exists {
			continue
		}
		if m.indexOnly && db.cfg.SkipIndexes {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return err
		}
		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration v%d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.SQL {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`,
		m.Version, m.Name, m.Description); err != nil {
		return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration v%d: %w", m.Version, err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
