// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// ContentFilter recommends unrated items sharing a genre with the items a
// user rated highly.
type ContentFilter struct {
	ratings      RatingSource
	catalog      CatalogSource
	threshold    float64
	candidateCap int
	logger       zerolog.Logger
}

// NewContentFilter creates a genre-overlap content filter.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewContentFilter(ratings RatingSource, catalog CatalogSource, cfg *Config, logger zerolog.Logger) *ContentFilter {
	defaults := DefaultConfig()
	threshold := cfg.HighRatingThreshold
	if threshold <= 0 {
		threshold = defaults.HighRatingThreshold
	}
	candidateCap := cfg.ContentCandidateCap
	if candidateCap <= 0 {
		candidateCap = defaults.ContentCandidateCap
	}
	return &ContentFilter{
		ratings:      ratings,
		catalog:      catalog,
		threshold:    threshold,
		candidateCap: candidateCap,
		logger:       logger.With().Str("component", "content").Logger(),
	}
}

// Recommend returns up to limit candidates in storage order.
// A user with no rating at or above the threshold yields an empty list.
func (f *ContentFilter) Recommend(ctx context.Context, userID, limit int) (RecommendationList, error) {
	if limit <= 0 {
		return RecommendationList{}, nil
	}

	ratings, err := f.ratings.FetchRatingVector(ctx, userID)
	if err != nil {
		return nil, collaboratorErr("fetch target ratings", err)
	}

	liked := lo.Keys(lo.PickBy(ratings, func(_ int, score float64) bool {
		return score >= f.threshold
	}))
	if len(liked) == 0 {
		f.logger.Debug().Int("user_id", userID).Float64("threshold", f.threshold).Msg("no highly rated items")
		return RecommendationList{}, nil
	}
	slices.Sort(liked)

	genresByItem, err := f.catalog.FetchItemGenres(ctx, liked)
	if err != nil {
		return nil, collaboratorErr("fetch item genres", err)
	}

	profile := mapset.NewThreadUnsafeSet[string]()
	for _, genres := range genresByItem {
		profile.Append(genres...)
	}
	if profile.Cardinality() == 0 {
		return RecommendationList{}, nil
	}

	genres := profile.ToSlice()
	slices.Sort(genres)

	candidates, err := f.catalog.FetchItemsByGenre(ctx, genres, userID, f.candidateCap)
	if err != nil {
		return nil, collaboratorErr("fetch items by genre", err)
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	f.logger.Debug().
		Int("user_id", userID).
		Int("liked_items", len(liked)).
		Strs("genres", genres).
		Int("returned", len(candidates)).
		Msg("content recommendations computed")

	return RecommendationList(candidates), nil
}
