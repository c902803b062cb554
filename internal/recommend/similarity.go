// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"math"
	"slices"
)

// CosineSimilarity computes the cosine similarity of two rating vectors over
// the items both have rated. Items rated by only one side are ignored.
//
// Returns 0 when the vectors share no items or when either restricted norm
// is zero. The result is clamped to [-1, 1].
func CosineSimilarity(a, b RatingVector) float64 {
	shared := sharedItems(a, b)
	if len(shared) == 0 {
		return 0
	}

	// Accumulate in item order so the result does not depend on map
	// iteration order; this keeps sim(a, b) == sim(b, a) bit for bit.
	var dot, normA, normB float64
	for _, item := range shared {
		sa, sb := a[item], b[item]
		dot += sa * sb
		normA += sa * sa
		normB += sb * sb
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / math.Sqrt(normA*normB)
	switch {
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	default:
		return sim
	}
}

// sharedItems returns the sorted intersection of the item ids of a and b.
func sharedItems(a, b RatingVector) []int {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	shared := make([]int, 0, len(small))
	for item := range small {
		if _, ok := large[item]; ok {
			shared = append(shared, item)
		}
	}
	slices.Sort(shared)
	return shared
}
