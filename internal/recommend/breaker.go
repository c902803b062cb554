// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelrank/internal/metrics"
)

// BreakerSettings configures BreakerStore.
type BreakerSettings struct {
	// Name labels logs and metrics.
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counts.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// MinRequests is the sample size needed before the breaker can trip.
	MinRequests uint32

	// FailureRatio trips the breaker once failures/requests reaches it.
	FailureRatio float64
}

// DefaultBreakerSettings returns the production breaker settings:
// opens at a 60% failure rate over at least 10 requests, retries after 30s.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "recommend-store",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerStore wraps a Store with a circuit breaker. While open, calls fail
// fast with a CollaboratorError wrapping gobreaker.ErrOpenState.
//
// The breaker uses real time for its interval and timeout.
type BreakerStore struct {
	store  Store
	cb     *gobreaker.CircuitBreaker[any]
	name   string
	logger zerolog.Logger
}

// NewBreakerStore creates a circuit-breaking Store decorator.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBreakerStore(store Store, settings BreakerSettings, logger zerolog.Logger) *BreakerStore {
	defaults := DefaultBreakerSettings()
	if settings.Name == "" {
		settings.Name = defaults.Name
	}
	if settings.MinRequests == 0 {
		settings.MinRequests = defaults.MinRequests
	}
	if settings.FailureRatio <= 0 {
		settings.FailureRatio = defaults.FailureRatio
	}

	logger = logger.With().Str("component", "circuit_breaker").Str("breaker", settings.Name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(settings.Name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= settings.FailureRatio
			if shouldTrip {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		// A caller abandoning its request says nothing about store health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerStore{
		store:  store,
		cb:     cb,
		name:   settings.Name,
		logger: logger,
	}
}

// State returns the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

// execute runs fn through the breaker and records the outcome.
func execute[T any](b *BreakerStore, op string, fn func() (T, error)) (T, error) {
	var zero T

	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Warn().Err(err).Str("op", op).Msg("request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return zero, &CollaboratorError{Op: op, Err: err}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()

	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, &CollaboratorError{Op: op, Err: fmt.Errorf("circuit breaker: unexpected result type %T", result)}
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func (b *BreakerStore) FetchRatingVector(ctx context.Context, userID int) (RatingVector, error) {
	return execute(b, "fetch rating vector", func() (RatingVector, error) {
		return b.store.FetchRatingVector(ctx, userID)
	})
}

func (b *BreakerStore) FetchAllOtherUsersRatingVectors(ctx context.Context, excludeUserID int) ([]UserRatings, error) {
	return execute(b, "fetch other users ratings", func() ([]UserRatings, error) {
		return b.store.FetchAllOtherUsersRatingVectors(ctx, excludeUserID)
	})
}

func (b *BreakerStore) FetchItemGenres(ctx context.Context, itemIDs []int) (map[int][]string, error) {
	return execute(b, "fetch item genres", func() (map[int][]string, error) {
		return b.store.FetchItemGenres(ctx, itemIDs)
	})
}

func (b *BreakerStore) FetchItemsByGenre(ctx context.Context, genres []string, excludeRatedBy, limit int) ([]CandidateItem, error) {
	return execute(b, "fetch items by genre", func() ([]CandidateItem, error) {
		return b.store.FetchItemsByGenre(ctx, genres, excludeRatedBy, limit)
	})
}

func (b *BreakerStore) FetchItemMetadata(ctx context.Context, itemIDs []int) (map[int]ItemMetadata, error) {
	return execute(b, "fetch item metadata", func() (map[int]ItemMetadata, error) {
		return b.store.FetchItemMetadata(ctx, itemIDs)
	})
}

func (b *BreakerStore) FetchPopularItems(ctx context.Context, limit int) ([]CandidateItem, error) {
	return execute(b, "fetch popular items", func() ([]CandidateItem, error) {
		return b.store.FetchPopularItems(ctx, limit)
	})
}

func (b *BreakerStore) FetchTrendingItems(ctx context.Context, limit, windowDays int) ([]CandidateItem, error) {
	return execute(b, "fetch trending items", func() ([]CandidateItem, error) {
		return b.store.FetchTrendingItems(ctx, limit, windowDays)
	})
}

func (b *BreakerStore) FetchDiverseItems(ctx context.Context, limit int) ([]CandidateItem, error) {
	return execute(b, "fetch diverse items", func() ([]CandidateItem, error) {
		return b.store.FetchDiverseItems(ctx, limit)
	})
}

func (b *BreakerStore) HasAnyRating(ctx context.Context, userID int) (bool, error) {
	return execute(b, "check ratings", func() (bool, error) {
		return b.store.HasAnyRating(ctx, userID)
	})
}

func (b *BreakerStore) HasAnyGenrePreference(ctx context.Context, userID int) (bool, error) {
	return execute(b, "check genre preferences", func() (bool, error) {
		return b.store.HasAnyGenrePreference(ctx, userID)
	})
}

func (b *BreakerStore) HasAnyTag(ctx context.Context, userID int) (bool, error) {
	return execute(b, "check tags", func() (bool, error) {
		return b.store.HasAnyTag(ctx, userID)
	})
}

var _ Store = (*BreakerStore)(nil)
