// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/reelrank/internal/database"
)

// noGenres is the MovieLens placeholder for a movie without genres.
const noGenres = "(no genres listed)"

// Rating scale accepted from ratings.csv.
const (
	minScore = 0.5
	maxScore = 5.0
)

// ErrInvalidRow marks a row that cannot be loaded.
var ErrInvalidRow = errors.New("invalid row")

// headers lists the expected header of each file.
var headers = map[string][]string{
	FileMovies:  {"movieId", "title", "genres"},
	FileTags:    {"userId", "movieId", "tag", "timestamp"},
	FileLinks:   {"movieId", "imdbId", "tmdbId"},
	FileRatings: {"userId", "movieId", "rating", "timestamp"},
}

func checkHeader(file string, got []string) error {
	want := headers[file]
	if len(got) != len(want) {
		return fmt.Errorf("%s: header has %d columns, want %d", file, len(got), len(want))
	}
	for i := range want {
		// Some exports carry a UTF-8 BOM on the first column.
		if strings.TrimPrefix(strings.TrimSpace(got[i]), "\ufeff") != want[i] {
			return fmt.Errorf("%s: header column %d is %q, want %q", file, i+1, got[i], want[i])
		}
	}
	return nil
}

func parseMovie(rec []string) (database.Movie, error) {
	id, err := parseID("movieId", rec[0])
	if err != nil {
		return database.Movie{}, err
	}
	title := strings.TrimSpace(rec[1])
	if title == "" {
		return database.Movie{}, fmt.Errorf("%w: empty title for movie %d", ErrInvalidRow, id)
	}
	genres := strings.TrimSpace(rec[2])
	if genres == noGenres {
		genres = ""
	}
	return database.Movie{ID: id, Title: title, Genres: genres}, nil
}

func parseLink(rec []string) (database.Link, error) {
	id, err := parseID("movieId", rec[0])
	if err != nil {
		return database.Link{}, err
	}
	link := database.Link{MovieID: id, IMDbID: strings.TrimSpace(rec[1])}
	if s := strings.TrimSpace(rec[2]); s != "" {
		tmdb, err := parseID("tmdbId", s)
		if err != nil {
			return database.Link{}, err
		}
		link.TMDbID = tmdb
	}
	return link, nil
}

func parseTag(rec []string) (database.Tag, error) {
	userID, err := parseID("userId", rec[0])
	if err != nil {
		return database.Tag{}, err
	}
	movieID, err := parseID("movieId", rec[1])
	if err != nil {
		return database.Tag{}, err
	}
	tag := strings.TrimSpace(rec[2])
	if tag == "" {
		return database.Tag{}, fmt.Errorf("%w: empty tag", ErrInvalidRow)
	}
	ts, err := parseTimestamp(rec[3])
	if err != nil {
		return database.Tag{}, err
	}
	return database.Tag{UserID: userID, MovieID: movieID, Tag: tag, TaggedAt: ts}, nil
}

func parseRating(rec []string) (database.Rating, error) {
	userID, err := parseID("userId", rec[0])
	if err != nil {
		return database.Rating{}, err
	}
	movieID, err := parseID("movieId", rec[1])
	if err != nil {
		return database.Rating{}, err
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil || score < minScore || score > maxScore {
		return database.Rating{}, fmt.Errorf("%w: rating %q outside [%.1f, %.1f]", ErrInvalidRow, rec[2], minScore, maxScore)
	}
	ts, err := parseTimestamp(rec[3])
	if err != nil {
		return database.Rating{}, err
	}
	return database.Rating{UserID: userID, MovieID: movieID, Score: score, RatedAt: ts}, nil
}

func parseID(field, s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q is not a positive integer", ErrInvalidRow, field, s)
	}
	return id, nil
}

// parseTimestamp reads Unix seconds.
func parseTimestamp(s string) (time.Time, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || secs < 0 {
		return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrInvalidRow, s)
	}
	return time.Unix(secs, 0).UTC(), nil
}
