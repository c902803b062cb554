// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
)

// Classifier decides whether a user has any behavioral signal.
type Classifier struct {
	signals SignalSource
}

// NewClassifier creates a classifier over signals.
func NewClassifier(signals SignalSource) *Classifier {
	return &Classifier{signals: signals}
}

// IsNewUser reports true iff the user has no rating, no liked genre and no tag.
// Checks stop at the first signal found.
func (c *Classifier) IsNewUser(ctx context.Context, userID int) (bool, error) {
	checks := []struct {
		op    string
		check func(context.Context, int) (bool, error)
	}{
		{"check ratings", c.signals.HasAnyRating},
		{"check genre preferences", c.signals.HasAnyGenrePreference},
		{"check tags", c.signals.HasAnyTag},
	}

	for _, ch := range checks {
		found, err := ch.check(ctx, userID)
		if err != nil {
			return false, collaboratorErr(ch.op, err)
		}
		if found {
			return false, nil
		}
	}
	return true, nil
}
