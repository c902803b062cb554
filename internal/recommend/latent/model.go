// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package latent

import (
	"errors"
	"fmt"
)

// Rating scale bounds of the MovieLens dataset.
const (
	MinRating = 0.5
	MaxRating = 5.0
)

// ErrInvalidID is returned for user or item ids that are not positive.
var ErrInvalidID = errors.New("invalid id")

// Model is a trained biased matrix-factorization model.
// Fields are exported for gob encoding; treat them as read-only.
type Model struct {
	// GlobalMean is the mean of every training rating.
	GlobalMean float64

	// UserBias and ItemBias are indexed by dense user/item index.
	UserBias []float64
	ItemBias []float64

	// UserFactors and ItemFactors hold one Factors-length row per index.
	UserFactors [][]float64
	ItemFactors [][]float64

	// UserIndex and ItemIndex map external ids to dense indices.
	UserIndex map[int]int
	ItemIndex map[int]int

	// Factors is the latent dimension.
	Factors int
}

// Predict returns the estimated rating of itemID by userID.
func (m *Model) Predict(userID, itemID int) (float64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("user %d: %w", userID, ErrInvalidID)
	}
	if itemID <= 0 {
		return 0, fmt.Errorf("item %d: %w", itemID, ErrInvalidID)
	}

	est := m.GlobalMean

	u, knownUser := m.UserIndex[userID]
	if knownUser {
		est += m.UserBias[u]
	}
	i, knownItem := m.ItemIndex[itemID]
	if knownItem {
		est += m.ItemBias[i]
	}
	if knownUser && knownItem {
		est += dot(m.UserFactors[u], m.ItemFactors[i])
	}

	return clip(est), nil
}

// KnowsUser reports whether userID was present in the training data.
func (m *Model) KnowsUser(userID int) bool {
	_, ok := m.UserIndex[userID]
	return ok
}

// KnowsItem reports whether itemID was present in the training data.
func (m *Model) KnowsItem(itemID int) bool {
	_, ok := m.ItemIndex[itemID]
	return ok
}

// UserCount returns the number of trained users.
func (m *Model) UserCount() int { return len(m.UserIndex) }

// ItemCount returns the number of trained items.
func (m *Model) ItemCount() int { return len(m.ItemIndex) }

// validate checks structural consistency after decoding.
func (m *Model) validate() error {
	if len(m.UserBias) != len(m.UserIndex) || len(m.UserFactors) != len(m.UserIndex) {
		return fmt.Errorf("user dimensions mismatch: %d index, %d bias, %d factors",
			len(m.UserIndex), len(m.UserBias), len(m.UserFactors))
	}
	if len(m.ItemBias) != len(m.ItemIndex) || len(m.ItemFactors) != len(m.ItemIndex) {
		return fmt.Errorf("item dimensions mismatch: %d index, %d bias, %d factors",
			len(m.ItemIndex), len(m.ItemBias), len(m.ItemFactors))
	}
	for _, row := range m.UserFactors {
		if len(row) != m.Factors {
			return fmt.Errorf("user factor row has %d columns, want %d", len(row), m.Factors)
		}
	}
	for _, row := range m.ItemFactors {
		if len(row) != m.Factors {
			return fmt.Errorf("item factor row has %d columns, want %d", len(row), m.Factors)
		}
	}
	return nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for f := range a {
		sum += a[f] * b[f]
	}
	return sum
}

func clip(v float64) float64 {
	return min(max(v, MinRating), MaxRating)
}
