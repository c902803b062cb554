// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package ingest

import (
	"errors"
	"testing"
	"time"
)

func TestCheckHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		header  []string
		wantErr bool
	}{
		{"movies", FileMovies, []string{"movieId", "title", "genres"}, false},
		{"ratings", FileRatings, []string{"userId", "movieId", "rating", "timestamp"}, false},
		{"byte order mark", FileLinks, []string{"\ufeffmovieId", "imdbId", "tmdbId"}, false},
		{"padded", FileTags, []string{" userId", "movieId ", "tag", "timestamp"}, false},
		{"wrong column", FileMovies, []string{"movieId", "name", "genres"}, true},
		{"missing column", FileRatings, []string{"userId", "movieId", "rating"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := checkHeader(tt.file, tt.header)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkHeader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseMovie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rec        []string
		wantGenres string
		wantErr    bool
	}{
		{"genres", []string{"1", "Toy Story (1995)", "Adventure|Animation"}, "Adventure|Animation", false},
		{"no genres placeholder", []string{"2", "Unknown (2020)", "(no genres listed)"}, "", false},
		{"empty title", []string{"3", " ", "Drama"}, "", true},
		{"bad id", []string{"x", "Heat", "Action"}, "", true},
		{"zero id", []string{"0", "Heat", "Action"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := parseMovie(tt.rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMovie() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidRow) {
					t.Errorf("parseMovie() error = %v, want ErrInvalidRow", err)
				}
				return
			}
			if m.Genres != tt.wantGenres {
				t.Errorf("Genres = %q, want %q", m.Genres, tt.wantGenres)
			}
		})
	}
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		rec       []string
		wantScore float64
		wantErr   bool
	}{
		{"valid", []string{"1", "31", "2.5", "1260759144"}, 2.5, false},
		{"max", []string{"1", "31", "5", "1260759144"}, 5, false},
		{"min", []string{"1", "31", "0.5", "1260759144"}, 0.5, false},
		{"above scale", []string{"1", "31", "5.5", "1260759144"}, 0, true},
		{"zero", []string{"1", "31", "0", "1260759144"}, 0, true},
		{"not a number", []string{"1", "31", "good", "1260759144"}, 0, true},
		{"bad timestamp", []string{"1", "31", "3", "yesterday"}, 0, true},
		{"negative user", []string{"-1", "31", "3", "1260759144"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := parseRating(tt.rec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRating() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && r.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", r.Score, tt.wantScore)
			}
		})
	}
}

func TestParseRating_Timestamp(t *testing.T) {
	t.Parallel()

	r, err := parseRating([]string{"1", "31", "2.5", "1260759144"})
	if err != nil {
		t.Fatalf("parseRating() error = %v", err)
	}
	want := time.Date(2009, 12, 14, 2, 52, 24, 0, time.UTC)
	if !r.RatedAt.Equal(want) {
		t.Errorf("RatedAt = %v, want %v", r.RatedAt, want)
	}
	if r.RatedAt.Location() != time.UTC {
		t.Errorf("RatedAt location = %v, want UTC", r.RatedAt.Location())
	}
}

func TestParseLink(t *testing.T) {
	t.Parallel()

	l, err := parseLink([]string{"1", "0114709", "862"})
	if err != nil {
		t.Fatalf("parseLink() error = %v", err)
	}
	if l.IMDbID != "0114709" || l.TMDbID != 862 {
		t.Errorf("parseLink() = %+v, want imdb 0114709 tmdb 862", l)
	}

	l, err = parseLink([]string{"791", "0113610", ""})
	if err != nil {
		t.Fatalf("parseLink() empty tmdb error = %v", err)
	}
	if l.TMDbID != 0 {
		t.Errorf("TMDbID = %d, want 0", l.TMDbID)
	}

	if _, err := parseLink([]string{"1", "0114709", "abc"}); err == nil {
		t.Error("parseLink(bad tmdb) error = nil, want error")
	}
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tag, err := parseTag([]string{"2", "60756", " funny ", "1445714994"})
	if err != nil {
		t.Fatalf("parseTag() error = %v", err)
	}
	if tag.Tag != "funny" || tag.UserID != 2 || tag.MovieID != 60756 {
		t.Errorf("parseTag() = %+v", tag)
	}

	if _, err := parseTag([]string{"2", "60756", "", "1445714994"}); err == nil {
		t.Error("parseTag(empty tag) error = nil, want error")
	}
}
