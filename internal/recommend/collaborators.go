// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
)

// RatingSource provides user rating histories.
type RatingSource interface {
	// FetchRatingVector returns the ratings of one user. A user without
	// ratings yields an empty vector and a nil error.
	FetchRatingVector(ctx context.Context, userID int) (RatingVector, error)

	// FetchAllOtherUsersRatingVectors returns the rating vectors of every
	// user except excludeUserID.
	FetchAllOtherUsersRatingVectors(ctx context.Context, excludeUserID int) ([]UserRatings, error)
}

// CatalogSource provides item metadata and genre queries.
type CatalogSource interface {
	// FetchItemGenres returns the genre labels of each known item.
	FetchItemGenres(ctx context.Context, itemIDs []int) (map[int][]string, error)

	// FetchItemsByGenre returns up to limit items sharing at least one genre
	// with genres that excludeRatedBy has not rated.
	FetchItemsByGenre(ctx context.Context, genres []string, excludeRatedBy, limit int) ([]CandidateItem, error)

	// FetchItemMetadata returns title and genres of each known item.
	FetchItemMetadata(ctx context.Context, itemIDs []int) (map[int]ItemMetadata, error)
}

// PopularitySource provides the non-personalized cold-start pools.
type PopularitySource interface {
	FetchPopularItems(ctx context.Context, limit int) ([]CandidateItem, error)
	FetchTrendingItems(ctx context.Context, limit, windowDays int) ([]CandidateItem, error)
	FetchDiverseItems(ctx context.Context, limit int) ([]CandidateItem, error)
}

// SignalSource answers whether a user has any behavioral signal.
type SignalSource interface {
	HasAnyRating(ctx context.Context, userID int) (bool, error)
	HasAnyGenrePreference(ctx context.Context, userID int) (bool, error)
	HasAnyTag(ctx context.Context, userID int) (bool, error)
}

// Store is the full collaborator surface of the recommendation core.
type Store interface {
	RatingSource
	CatalogSource
	PopularitySource
	SignalSource
}

// Predictor scores a (user, item) pair with a trained model.
type Predictor interface {
	Predict(userID, itemID int) (float64, error)
}

// UserStrategy produces a recommendation list for a user.
// Both filters and the hybrid blender satisfy it.
type UserStrategy interface {
	Recommend(ctx context.Context, userID, limit int) (RecommendationList, error)
}
