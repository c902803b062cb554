// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// HybridBlender merges collaborative and content-based results for users
// with history. Collaborative items come first; duplicates keep their
// first position.
type HybridBlender struct {
	collaborative UserStrategy
	content       UserStrategy
	defaultLimit  int
	logger        zerolog.Logger
}

// NewHybridBlender creates a blender over the two strategies.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHybridBlender(collaborative, content UserStrategy, cfg *Config, logger zerolog.Logger) *HybridBlender {
	limit := cfg.DefaultExistingLimit
	if limit <= 0 {
		limit = DefaultConfig().DefaultExistingLimit
	}
	return &HybridBlender{
		collaborative: collaborative,
		content:       content,
		defaultLimit:  limit,
		logger:        logger.With().Str("component", "hybrid").Logger(),
	}
}

// Recommend returns up to limit unique items. A zero limit selects the
// configured default; a negative limit yields an empty list.
func (b *HybridBlender) Recommend(ctx context.Context, userID, limit int) (RecommendationList, error) {
	if limit == 0 {
		limit = b.defaultLimit
	}
	if limit < 0 {
		return RecommendationList{}, nil
	}

	collab, err := b.collaborative.Recommend(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	content, err := b.content.Recommend(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	merged := mergeUnique(limit, collab, content)

	b.logger.Debug().
		Int("user_id", userID).
		Int("collaborative", len(collab)).
		Int("content", len(content)).
		Int("returned", len(merged)).
		Msg("hybrid recommendations blended")

	return merged, nil
}

// mergeUnique concatenates lists in order, keeps the first occurrence of
// each item id and truncates to limit. The result is never padded.
func mergeUnique(limit int, lists ...RecommendationList) RecommendationList {
	if limit <= 0 {
		return RecommendationList{}
	}

	merged := RecommendationList(lo.UniqBy(slices.Concat(lists...), func(item CandidateItem) int {
		return item.ItemID
	}))
	if merged == nil {
		return RecommendationList{}
	}
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
