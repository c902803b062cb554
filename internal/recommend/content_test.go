// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func contentFixture() *mockStore {
	return &mockStore{
		ratings: map[int]RatingVector{
			1: {10: 4.5, 20: 4.0, 30: 2.0},
			2: {10: 3.5, 20: 1.0},
		},
		metadata: map[int]ItemMetadata{
			10: {Title: "Toy Story (1995)", Genres: []string{"Animation", "Comedy"}},
			20: {Title: "Heat (1995)", Genres: []string{"Action", "Comedy"}},
			30: {Title: "Casino (1995)", Genres: []string{"Drama"}},
		},
		byGenre: items(101, 102, 103, 104, 105),
	}
}

func TestContentFilter_GenreProfile(t *testing.T) {
	t.Parallel()

	store := contentFixture()
	f := NewContentFilter(store, store, DefaultConfig(), testLogger())

	list, err := f.Recommend(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Only items rated >= 4.0 seed the profile; Drama comes from a 2.0 rating.
	if want := []string{"Action", "Animation", "Comedy"}; !slices.Equal(store.lastGenres, want) {
		t.Errorf("genres = %v, want %v", store.lastGenres, want)
	}
	if store.lastExcludeRatedBy != 1 {
		t.Errorf("excludeRatedBy = %d, want 1", store.lastExcludeRatedBy)
	}
	if store.lastGenreLimit != 50 {
		t.Errorf("candidate cap = %d, want 50", store.lastGenreLimit)
	}
	if got, want := list.IDs(), []int{101, 102, 103}; !slices.Equal(got, want) {
		t.Errorf("IDs = %v, want %v (prefix of storage order)", got, want)
	}
	for _, item := range list {
		if item.PredictedRating != nil {
			t.Errorf("item %d has predicted rating, want none", item.ItemID)
		}
	}
}

func TestContentFilter_EmptySignal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID int
		setup  func(*mockStore)
	}{
		{name: "highest rating below threshold", userID: 2},
		{name: "no ratings", userID: 42},
		{name: "liked items have no genres", userID: 1, setup: func(m *mockStore) { m.metadata = map[int]ItemMetadata{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := contentFixture()
			if tt.setup != nil {
				tt.setup(store)
			}
			f := NewContentFilter(store, store, DefaultConfig(), testLogger())

			list, err := f.Recommend(context.Background(), tt.userID, 10)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if list == nil || len(list) != 0 {
				t.Errorf("list = %v, want empty non-nil", list)
			}
			if store.lastGenres != nil {
				t.Errorf("genre query ran with %v, want no query", store.lastGenres)
			}
		})
	}
}

func TestContentFilter_ThresholdIsInclusive(t *testing.T) {
	t.Parallel()

	store := contentFixture()
	store.ratings[3] = RatingVector{20: 4.0}
	f := NewContentFilter(store, store, DefaultConfig(), testLogger())

	list, err := f.Recommend(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(list) != 5 {
		t.Errorf("len = %d, want 5", len(list))
	}
}

func TestContentFilter_CollaboratorFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*mockStore)
	}{
		{name: "ratings", setup: func(m *mockStore) { m.ratingsErr = errStoreDown }},
		{name: "genres", setup: func(m *mockStore) { m.genresErr = errStoreDown }},
		{name: "by genre", setup: func(m *mockStore) { m.byGenreErr = errStoreDown }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := contentFixture()
			tt.setup(store)
			f := NewContentFilter(store, store, DefaultConfig(), testLogger())

			if _, err := f.Recommend(context.Background(), 1, 10); !errors.Is(err, ErrCollaboratorFailure) {
				t.Errorf("err = %v, want ErrCollaboratorFailure", err)
			}
		})
	}
}
