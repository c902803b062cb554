// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func testBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:         name,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	t.Parallel()

	store := &mockStore{ratings: map[int]RatingVector{1: {10: 4.0}}}
	b := NewBreakerStore(store, testBreakerSettings("test-pass"), testLogger())

	r, err := b.FetchRatingVector(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchRatingVector() error = %v", err)
	}
	if r[10] != 4.0 {
		t.Errorf("rating = %v, want 4.0", r[10])
	}

	has, err := b.HasAnyRating(context.Background(), 1)
	if err != nil || !has {
		t.Errorf("HasAnyRating() = %v, %v; want true, nil", has, err)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreakerStore_WrapsFailures(t *testing.T) {
	t.Parallel()

	b := NewBreakerStore(&mockStore{popularErr: errStoreDown}, testBreakerSettings("test-wrap"), testLogger())

	_, err := b.FetchPopularItems(context.Background(), 10)
	var ce *CollaboratorError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CollaboratorError", err)
	}
	if ce.Op != "fetch popular items" {
		t.Errorf("Op = %q, want %q", ce.Op, "fetch popular items")
	}
	if !errors.Is(err, errStoreDown) {
		t.Errorf("err = %v, want wrapping store error", err)
	}
}

func TestBreakerStore_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	store := &mockStore{signalErr: errStoreDown}
	b := NewBreakerStore(store, testBreakerSettings("test-open"), testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := b.HasAnyRating(ctx, 1); err == nil {
			t.Fatalf("call %d: error = nil, want failure", i)
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	before := store.hasRatingCalls
	_, err := b.HasAnyRating(ctx, 1)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
	if !errors.Is(err, ErrCollaboratorFailure) {
		t.Errorf("err = %v, want ErrCollaboratorFailure", err)
	}
	if store.hasRatingCalls != before {
		t.Error("open breaker still called the store")
	}
}

func TestBreakerStore_CancellationDoesNotTrip(t *testing.T) {
	t.Parallel()

	store := &mockStore{signalErr: context.Canceled}
	b := NewBreakerStore(store, testBreakerSettings("test-cancel"), testLogger())

	for i := 0; i < 5; i++ {
		_, _ = b.HasAnyTag(context.Background(), 1)
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreakerStore_Defaults(t *testing.T) {
	t.Parallel()

	b := NewBreakerStore(&mockStore{}, BreakerSettings{}, testLogger())
	if b.name != "recommend-store" {
		t.Errorf("name = %q, want recommend-store", b.name)
	}
}

func TestStateToString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.want {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.want)
		}
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
	}
}
