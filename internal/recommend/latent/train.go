// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package latent

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// ErrNoRatings is returned when training is attempted on an empty dataset.
var ErrNoRatings = errors.New("no ratings to train on")

// Rating is one explicit training triple.
type Rating struct {
	UserID int
	ItemID int
	Score  float64
}

// TrainerConfig contains SGD hyperparameters.
type TrainerConfig struct {
	// Factors is the latent dimension.
	// Default: 100.
	Factors int `koanf:"factors"`

	// Epochs is the number of passes over the data.
	// Default: 20.
	Epochs int `koanf:"epochs"`

	// LearningRate is the SGD step size.
	// Default: 0.005.
	LearningRate float64 `koanf:"learning_rate"`

	// Regularization is the L2 penalty on biases and factors.
	// Default: 0.02.
	Regularization float64 `koanf:"regularization"`

	// InitStdDev is the standard deviation of the normal factor init.
	// Default: 0.1.
	InitStdDev float64 `koanf:"init_std_dev"`

	// Seed makes training reproducible. Zero selects 42.
	Seed int64 `koanf:"seed"`
}

// DefaultTrainerConfig returns the default hyperparameters.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Factors:        100,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitStdDev:     0.1,
		Seed:           42,
	}
}

// TrainStats summarizes a training run.
type TrainStats struct {
	Ratings  int
	Users    int
	Items    int
	Epochs   int
	RMSE     float64
	Duration time.Duration
}

// Trainer fits Models with stochastic gradient descent.
type Trainer struct {
	config TrainerConfig
	logger zerolog.Logger
}

// NewTrainer creates a trainer, filling zero fields from the defaults.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTrainer(cfg TrainerConfig, logger zerolog.Logger) *Trainer {
	d := DefaultTrainerConfig()
	if cfg.Factors <= 0 {
		cfg.Factors = d.Factors
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = d.Epochs
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = d.LearningRate
	}
	if cfg.Regularization <= 0 {
		cfg.Regularization = d.Regularization
	}
	if cfg.InitStdDev <= 0 {
		cfg.InitStdDev = d.InitStdDev
	}
	if cfg.Seed == 0 {
		cfg.Seed = d.Seed
	}
	return &Trainer{
		config: cfg,
		logger: logger.With().Str("component", "latent_trainer").Logger(),
	}
}

// Config returns the effective hyperparameters.
func (t *Trainer) Config() TrainerConfig {
	return t.config
}

// Train fits a model to ratings. Ratings with non-positive ids or scores
// outside the rating scale are ignored.
//
//nolint:gocritic // rangeValCopy is acceptable for small triples
func (t *Trainer) Train(ctx context.Context, ratings []Rating) (*Model, TrainStats, error) {
	start := time.Now()
	cfg := t.config

	if err := ctx.Err(); err != nil {
		return nil, TrainStats{}, err
	}

	m := &Model{
		UserIndex: make(map[int]int),
		ItemIndex: make(map[int]int),
		Factors:   cfg.Factors,
	}

	// Dense triples: user index, item index, score.
	type triple struct {
		u, i  int
		score float64
	}
	data := make([]triple, 0, len(ratings))
	var sum float64
	for _, r := range ratings {
		if r.UserID <= 0 || r.ItemID <= 0 || r.Score < MinRating || r.Score > MaxRating {
			continue
		}
		u, ok := m.UserIndex[r.UserID]
		if !ok {
			u = len(m.UserIndex)
			m.UserIndex[r.UserID] = u
		}
		i, ok := m.ItemIndex[r.ItemID]
		if !ok {
			i = len(m.ItemIndex)
			m.ItemIndex[r.ItemID] = i
		}
		data = append(data, triple{u: u, i: i, score: r.Score})
		sum += r.Score
	}
	if len(data) == 0 {
		return nil, TrainStats{}, ErrNoRatings
	}

	m.GlobalMean = sum / float64(len(data))

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible init, not security sensitive
	m.UserBias = make([]float64, len(m.UserIndex))
	m.ItemBias = make([]float64, len(m.ItemIndex))
	m.UserFactors = initFactors(rng, len(m.UserIndex), cfg.Factors, cfg.InitStdDev)
	m.ItemFactors = initFactors(rng, len(m.ItemIndex), cfg.Factors, cfg.InitStdDev)

	lr, reg := cfg.LearningRate, cfg.Regularization
	var rmse float64

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, TrainStats{}, fmt.Errorf("training cancelled at epoch %d: %w", epoch, err)
		}

		var sqErr float64
		for _, d := range data {
			pu, qi := m.UserFactors[d.u], m.ItemFactors[d.i]

			pred := m.GlobalMean + m.UserBias[d.u] + m.ItemBias[d.i] + dot(pu, qi)
			e := d.score - pred
			sqErr += e * e

			m.UserBias[d.u] += lr * (e - reg*m.UserBias[d.u])
			m.ItemBias[d.i] += lr * (e - reg*m.ItemBias[d.i])

			for f := range pu {
				puf, qif := pu[f], qi[f]
				pu[f] += lr * (e*qif - reg*puf)
				qi[f] += lr * (e*puf - reg*qif)
			}
		}

		rmse = math.Sqrt(sqErr / float64(len(data)))
		if math.IsNaN(rmse) || math.IsInf(rmse, 0) {
			return nil, TrainStats{}, fmt.Errorf("training diverged at epoch %d", epoch)
		}

		t.logger.Debug().
			Int("epoch", epoch).
			Int("epochs", cfg.Epochs).
			Float64("rmse", rmse).
			Msg("epoch complete")
	}

	stats := TrainStats{
		Ratings:  len(data),
		Users:    len(m.UserIndex),
		Items:    len(m.ItemIndex),
		Epochs:   cfg.Epochs,
		RMSE:     rmse,
		Duration: time.Since(start),
	}

	t.logger.Info().
		Int("ratings", stats.Ratings).
		Int("users", stats.Users).
		Int("items", stats.Items).
		Float64("rmse", stats.RMSE).
		Dur("duration", stats.Duration).
		Msg("latent-factor model trained")

	return m, stats, nil
}

func initFactors(rng *rand.Rand, rows, cols int, std float64) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		row := make([]float64, cols)
		for c := range row {
			row[c] = rng.NormFloat64() * std
		}
		out[r] = row
	}
	return out
}
