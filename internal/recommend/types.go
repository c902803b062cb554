// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"strings"

	"github.com/samber/lo"
)

// GenreSeparator delimits genre labels in the MovieLens genre string.
const GenreSeparator = "|"

// RatingVector maps item id to the score a user gave it (0.5-5.0).
type RatingVector map[int]float64

// UserRatings pairs a user with their rating vector.
type UserRatings struct {
	UserID  int          `json:"user_id"`
	Ratings RatingVector `json:"ratings"`
}

// ItemMetadata is the display information for an item.
type ItemMetadata struct {
	Title  string   `json:"title"`
	Genres []string `json:"genres"`
}

// CandidateItem is a recommendable item.
// PredictedRating is set only by the collaborative filter.
type CandidateItem struct {
	// ItemID is the MovieLens movie id.
	ItemID int `json:"movie_id"`

	// Title is the display title including the release year.
	Title string `json:"title"`

	// Genres are the category labels of the item.
	Genres []string `json:"genres"`

	// PredictedRating is the similarity-weighted model score.
	PredictedRating *float64 `json:"predicted_rating,omitempty"`
}

// SimilarUser is a neighbour of the target user.
type SimilarUser struct {
	UserID     int     `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// RecommendationList is an ordered list of unique items.
type RecommendationList []CandidateItem

// IDs returns the item ids in list order.
func (l RecommendationList) IDs() []int {
	return lo.Map(l, func(item CandidateItem, _ int) int {
		return item.ItemID
	})
}

// Result is the outcome of a top-level recommendation request.
type Result struct {
	// UserID is the requesting user.
	UserID int `json:"user_id"`

	// IsNewUser reports whether the cold-start path was taken.
	IsNewUser bool `json:"is_new_user"`

	// Path names the strategy that produced Items ("hybrid" or "cold_start").
	Path string `json:"path"`

	// Items is the ranked recommendation list.
	Items RecommendationList `json:"recommendations"`
}

// Prediction is the outcome of scoring one (user, item) pair.
// OK is false when the model could not produce a score; Err then holds
// the reason and wraps ErrPredictionUnavailable.
type Prediction struct {
	Score float64
	OK    bool
	Err   error
}

// ParseGenres splits a pipe-delimited genre string into labels.
func ParseGenres(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, GenreSeparator)
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// JoinGenres is the inverse of ParseGenres.
func JoinGenres(genres []string) string {
	return strings.Join(genres, GenreSeparator)
}

func float64Ptr(v float64) *float64 {
	return &v
}
