// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/metrics"
)

// CollaborativeFilter recommends items rated by the users most similar to
// the target, scored by the latent-factor model and weighted by similarity.
//
// Items the target has already rated are not excluded from the candidates.
type CollaborativeFilter struct {
	ratings          RatingSource
	catalog          CatalogSource
	predictor        *SafePredictor
	neighborhoodSize int
	logger           zerolog.Logger
}

// NewCollaborativeFilter creates a user-based collaborative filter.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCollaborativeFilter(ratings RatingSource, catalog CatalogSource, predictor *SafePredictor, cfg *Config, logger zerolog.Logger) *CollaborativeFilter {
	size := cfg.NeighborhoodSize
	if size <= 0 {
		size = DefaultConfig().NeighborhoodSize
	}
	return &CollaborativeFilter{
		ratings:          ratings,
		catalog:          catalog,
		predictor:        predictor,
		neighborhoodSize: size,
		logger:           logger.With().Str("component", "collaborative").Logger(),
	}
}

// scoredItem accumulates similarity-weighted predictions for one item.
type scoredItem struct {
	itemID      int
	weightedSum float64
	weightSum   float64
	score       float64
}

// Recommend returns up to limit items with their predicted rating attached.
// A user with no ratings yields an empty list.
func (f *CollaborativeFilter) Recommend(ctx context.Context, userID, limit int) (RecommendationList, error) {
	if limit <= 0 {
		return RecommendationList{}, nil
	}

	target, err := f.ratings.FetchRatingVector(ctx, userID)
	if err != nil {
		return nil, collaboratorErr("fetch target ratings", err)
	}
	if len(target) == 0 {
		f.logger.Debug().Int("user_id", userID).Msg("no ratings, skipping collaborative filter")
		return RecommendationList{}, nil
	}

	others, err := f.ratings.FetchAllOtherUsersRatingVectors(ctx, userID)
	if err != nil {
		return nil, collaboratorErr("fetch other users ratings", err)
	}

	neighbours := f.nearestNeighbours(target, others)
	metrics.NeighborhoodSize.Observe(float64(len(neighbours)))

	scores, err := f.aggregate(ctx, userID, neighbours)
	if err != nil {
		return nil, err
	}

	ranked := rankScores(scores, limit)
	if len(ranked) == 0 {
		return RecommendationList{}, nil
	}

	ids := make([]int, len(ranked))
	for i, s := range ranked {
		ids[i] = s.itemID
	}
	meta, err := f.catalog.FetchItemMetadata(ctx, ids)
	if err != nil {
		return nil, collaboratorErr("fetch item metadata", err)
	}

	list := make(RecommendationList, 0, len(ranked))
	for _, s := range ranked {
		m := meta[s.itemID]
		genres := m.Genres
		if genres == nil {
			genres = []string{}
		}
		list = append(list, CandidateItem{
			ItemID:          s.itemID,
			Title:           m.Title,
			Genres:          genres,
			PredictedRating: float64Ptr(s.score),
		})
	}

	f.logger.Debug().
		Int("user_id", userID).
		Int("neighbours", len(neighbours)).
		Int("candidates", len(scores)).
		Int("returned", len(list)).
		Msg("collaborative recommendations computed")

	return list, nil
}

// nearestNeighbours ranks every other user by cosine similarity to target
// and keeps the top neighborhoodSize.
func (f *CollaborativeFilter) nearestNeighbours(target RatingVector, others []UserRatings) []SimilarUser {
	similar := make([]SimilarUser, 0, len(others))
	for _, other := range others {
		similar = append(similar, SimilarUser{
			UserID:     other.UserID,
			Similarity: CosineSimilarity(target, other.Ratings),
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})

	if len(similar) > f.neighborhoodSize {
		similar = similar[:f.neighborhoodSize]
	}
	return similar
}

// aggregate predicts every item rated by each neighbour for the target user
// and accumulates the similarity-weighted sums.
func (f *CollaborativeFilter) aggregate(ctx context.Context, userID int, neighbours []SimilarUser) (map[int]*scoredItem, error) {
	scores := make(map[int]*scoredItem)

	for _, n := range neighbours {
		ratings, err := f.ratings.FetchRatingVector(ctx, n.UserID)
		if err != nil {
			return nil, collaboratorErr("fetch neighbour ratings", err)
		}

		for itemID := range ratings {
			pred := f.predictor.Predict(userID, itemID)
			if !pred.OK {
				continue
			}

			s, ok := scores[itemID]
			if !ok {
				s = &scoredItem{itemID: itemID}
				scores[itemID] = s
			}
			s.weightedSum += pred.Score * n.Similarity
			s.weightSum += n.Similarity
		}
	}

	return scores, nil
}

// rankScores finalizes weighted averages and returns the top limit items,
// highest score first with ties broken by ascending item id.
func rankScores(scores map[int]*scoredItem, limit int) []scoredItem {
	ranked := make([]scoredItem, 0, len(scores))
	for _, s := range scores {
		// Only zero-similarity neighbours contributed to this item.
		if s.weightSum <= 0 {
			continue
		}
		s.score = s.weightedSum / s.weightSum
		ranked = append(ranked, *s)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].itemID < ranked[j].itemID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
