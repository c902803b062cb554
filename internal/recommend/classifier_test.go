// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"testing"
)

func TestClassifier_IsNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		store         *mockStore
		wantNew       bool
		wantGenreCall int32
		wantTagCall   int32
	}{
		{
			name:          "no signal at all",
			store:         &mockStore{},
			wantNew:       true,
			wantGenreCall: 1,
			wantTagCall:   1,
		},
		{
			name:          "has ratings short-circuits",
			store:         &mockStore{ratings: map[int]RatingVector{1: {10: 4.0}}},
			wantNew:       false,
			wantGenreCall: 0,
			wantTagCall:   0,
		},
		{
			name:          "genre preference only",
			store:         &mockStore{genreLikes: map[int]bool{1: true}},
			wantNew:       false,
			wantGenreCall: 1,
			wantTagCall:   0,
		},
		{
			name:          "tag only",
			store:         &mockStore{tags: map[int]bool{1: true}},
			wantNew:       false,
			wantGenreCall: 1,
			wantTagCall:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewClassifier(tt.store)
			isNew, err := c.IsNewUser(context.Background(), 1)
			if err != nil {
				t.Fatalf("IsNewUser() error = %v", err)
			}
			if isNew != tt.wantNew {
				t.Errorf("IsNewUser() = %v, want %v", isNew, tt.wantNew)
			}
			if tt.store.hasRatingCalls != 1 {
				t.Errorf("rating checks = %d, want 1", tt.store.hasRatingCalls)
			}
			if tt.store.hasGenreCalls != tt.wantGenreCall {
				t.Errorf("genre checks = %d, want %d", tt.store.hasGenreCalls, tt.wantGenreCall)
			}
			if tt.store.hasTagCalls != tt.wantTagCall {
				t.Errorf("tag checks = %d, want %d", tt.store.hasTagCalls, tt.wantTagCall)
			}
		})
	}
}

func TestClassifier_CollaboratorFailure(t *testing.T) {
	t.Parallel()

	c := NewClassifier(&mockStore{signalErr: errStoreDown})
	isNew, err := c.IsNewUser(context.Background(), 1)
	if isNew {
		t.Error("IsNewUser() = true on failure, want false")
	}
	if !errors.Is(err, ErrCollaboratorFailure) || !errors.Is(err, errStoreDown) {
		t.Errorf("err = %v, want collaborator failure wrapping store error", err)
	}
}
