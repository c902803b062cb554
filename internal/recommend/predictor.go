// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/metrics"
)

// SafePredictor isolates latent-factor prediction failures.
// Every failure, including a panic inside the model, becomes an
// unavailable Prediction instead of an error for the request.
type SafePredictor struct {
	model  Predictor
	logger zerolog.Logger
}

// NewSafePredictor wraps model. A nil model makes every prediction unavailable.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSafePredictor(model Predictor, logger zerolog.Logger) *SafePredictor {
	return &SafePredictor{
		model:  model,
		logger: logger.With().Str("component", "predictor").Logger(),
	}
}

// Predict scores (userID, itemID).
func (p *SafePredictor) Predict(userID, itemID int) (pred Prediction) {
	if p.model == nil {
		return p.unavailable(userID, itemID, ErrNoModel)
	}

	defer func() {
		if r := recover(); r != nil {
			pred = p.unavailable(userID, itemID, fmt.Errorf("model panic: %v", r))
		}
	}()

	score, err := p.model.Predict(userID, itemID)
	if err != nil {
		return p.unavailable(userID, itemID, err)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return p.unavailable(userID, itemID, fmt.Errorf("non-finite score %v", score))
	}

	return Prediction{Score: score, OK: true}
}

func (p *SafePredictor) unavailable(userID, itemID int, cause error) Prediction {
	metrics.PredictionsUnavailable.Inc()
	p.logger.Warn().
		Err(cause).
		Int("user_id", userID).
		Int("item_id", itemID).
		Msg("prediction unavailable, skipping item")
	return Prediction{Err: fmt.Errorf("%w: user %d item %d: %w", ErrPredictionUnavailable, userID, itemID, cause)}
}
