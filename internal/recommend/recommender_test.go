// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func existingUserFixture() *mockStore {
	return &mockStore{
		ratings: map[int]RatingVector{
			1: {10: 5.0, 11: 4.0},
			2: {10: 5.0, 11: 4.0, 12: 3.0},
			3: {11: 2.0, 13: 4.5},
		},
		metadata: map[int]ItemMetadata{
			10: {Title: "Heat (1995)", Genres: []string{"Action", "Crime"}},
			11: {Title: "Casino (1995)", Genres: []string{"Crime", "Drama"}},
			12: {Title: "Ronin (1998)", Genres: []string{"Action"}},
			13: {Title: "Fargo (1996)", Genres: []string{"Comedy", "Crime"}},
		},
		byGenre: items(20, 21, 22),
		popular: items(idRange(1, 50)...),
	}
}

func TestRecommender_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   int
		wantNew  bool
		wantPath string
	}{
		{name: "existing user takes hybrid path", userID: 1, wantNew: false, wantPath: "hybrid"},
		{name: "unknown user takes cold-start path", userID: 99, wantNew: true, wantPath: "cold_start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewRecommender(existingUserFixture(), &mockPredictor{fallback: 4.0}, DefaultConfig(), testLogger(),
				WithRand(rand.New(rand.NewSource(1))))
			if err != nil {
				t.Fatalf("NewRecommender() error = %v", err)
			}

			res, err := r.Recommend(context.Background(), tt.userID, 0)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if res.UserID != tt.userID {
				t.Errorf("UserID = %d, want %d", res.UserID, tt.userID)
			}
			if res.IsNewUser != tt.wantNew {
				t.Errorf("IsNewUser = %v, want %v", res.IsNewUser, tt.wantNew)
			}
			if res.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", res.Path, tt.wantPath)
			}
			if len(res.Items) == 0 {
				t.Error("Items is empty")
			}
			assertUnique(t, res.Items, 12)
		})
	}
}

func TestRecommender_ColdStartDefaultLimit(t *testing.T) {
	t.Parallel()

	r, err := NewRecommender(existingUserFixture(), nil, DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}

	res, err := r.Recommend(context.Background(), 500, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Items) != 10 {
		t.Errorf("len = %d, want 10", len(res.Items))
	}
}

func TestRecommender_NilModelFallsBackToContent(t *testing.T) {
	t.Parallel()

	r, err := NewRecommender(existingUserFixture(), nil, DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}

	res, err := r.Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got, want := res.Items.IDs(), []int{20, 21, 22}; !slices.Equal(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
	for _, item := range res.Items {
		if item.PredictedRating != nil {
			t.Errorf("item %d has a predicted rating without a model", item.ItemID)
		}
	}
}

func TestRecommender_CollaborativeResultsCarryPredictions(t *testing.T) {
	t.Parallel()

	r, err := NewRecommender(existingUserFixture(), &mockPredictor{fallback: 4.0}, DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}

	res, err := r.Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(res.Items) == 0 || res.Items[0].PredictedRating == nil {
		t.Fatalf("first item = %+v, want a collaborative item with a prediction", res.Items)
	}
}

func TestRecommender_LimitIsCapped(t *testing.T) {
	t.Parallel()

	store := existingUserFixture()
	r, err := NewRecommender(store, nil, DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}

	if _, err := r.Recommend(context.Background(), 99, 1000); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if store.lastPoolLimit != 100*7 {
		t.Errorf("pool size = %d, want %d", store.lastPoolLimit, 100*7)
	}
}

func TestRecommender_NegativeLimit(t *testing.T) {
	t.Parallel()

	r, err := NewRecommender(existingUserFixture(), &mockPredictor{fallback: 4.0}, DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}

	for _, userID := range []int{1, 99} {
		res, err := r.Recommend(context.Background(), userID, -5)
		if err != nil {
			t.Fatalf("Recommend(%d) error = %v", userID, err)
		}
		if res.Items == nil || len(res.Items) != 0 {
			t.Errorf("Recommend(%d) items = %v, want empty non-nil", userID, res.Items)
		}
	}
}

func TestRecommender_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*mockStore)
	}{
		{name: "classification", setup: func(m *mockStore) { m.signalErr = errStoreDown }},
		{name: "hybrid", setup: func(m *mockStore) { m.othersErr = errStoreDown }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := existingUserFixture()
			tt.setup(store)
			r, err := NewRecommender(store, &mockPredictor{fallback: 4.0}, DefaultConfig(), testLogger())
			if err != nil {
				t.Fatalf("NewRecommender() error = %v", err)
			}

			res, err := r.Recommend(context.Background(), 1, 0)
			if res != nil {
				t.Errorf("Result = %+v, want nil", res)
			}
			if !errors.Is(err, ErrCollaboratorFailure) {
				t.Errorf("err = %v, want ErrCollaboratorFailure", err)
			}
		})
	}
}

func TestRecommender_PredictionFailuresAreAbsorbed(t *testing.T) {
	t.Parallel()

	model := &mockPredictor{predictErr: errors.New("factor lookup failed")}
	r, err := NewRecommender(existingUserFixture(), model, DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}

	res, err := r.Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got, want := res.Items.IDs(), []int{20, 21, 22}; !slices.Equal(got, want) {
		t.Errorf("IDs = %v, want content results %v", got, want)
	}
	if model.calls == 0 {
		t.Error("model was never consulted")
	}
}

func TestNewRecommender_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.NeighborhoodSize = 0
	if _, err := NewRecommender(&mockStore{}, nil, cfg, testLogger()); err == nil {
		t.Error("NewRecommender() error = nil, want validation error")
	}
}

func TestRecommender_ConfigIsCopy(t *testing.T) {
	t.Parallel()

	r, err := NewRecommender(&mockStore{}, nil, nil, testLogger())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}
	cfg := r.Config()
	cfg.MaxLimit = 1
	if r.Config().MaxLimit != 100 {
		t.Errorf("MaxLimit = %d after mutating copy, want 100", r.Config().MaxLimit)
	}
}
