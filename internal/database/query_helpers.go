// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package database

import (
	"context"
	"database/sql"
	"io"
	"strings"

	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// scanFunc is a function that scans a single row into a result type
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows using the provided scan function.
// The result is never nil.
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []any, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// scanCandidate reads (movie_id, title, genres) into a CandidateItem.
func scanCandidate(rows *sql.Rows) (recommend.CandidateItem, error) {
	var (
		item   recommend.CandidateItem
		genres string
	)
	if err := rows.Scan(&item.ItemID, &item.Title, &genres); err != nil {
		return recommend.CandidateItem{}, err
	}
	item.Genres = recommend.ParseGenres(genres)
	return item, nil
}

// inClause returns "(?, ?, ...)" for n values and the values as args.
func inClause[T any](values []T) (string, []any) {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return "(" + strings.Join(placeholders, ", ") + ")", args
}

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
