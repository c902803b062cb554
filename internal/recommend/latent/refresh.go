// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package latent

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// RatingSource supplies the training set.
type RatingSource interface {
	AllRatings(ctx context.Context) ([]Rating, error)
}

// RefresherConfig names the stored model and how many versions to keep.
type RefresherConfig struct {
	Name string

	// Keep is passed to Prune after each save. 0 keeps everything.
	Keep int
}

// Refresher trains a model from a RatingSource, saves it and publishes it
// through a Holder.
type Refresher struct {
	source  RatingSource
	trainer *Trainer
	store   *ModelStore
	holder  *Holder
	cfg     RefresherConfig
	logger  zerolog.Logger
}

// NewRefresher wires the training pipeline.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRefresher(source RatingSource, trainer *Trainer, store *ModelStore, holder *Holder, cfg RefresherConfig, logger zerolog.Logger) *Refresher {
	if cfg.Name == "" {
		cfg.Name = "svd"
	}
	return &Refresher{
		source:  source,
		trainer: trainer,
		store:   store,
		holder:  holder,
		cfg:     cfg,
		logger:  logger.With().Str("component", "model_refresher").Str("model", cfg.Name).Logger(),
	}
}

// LoadLatest loads the newest stored version into the holder.
// It returns ErrModelNotFound when nothing has been saved yet.
func (r *Refresher) LoadLatest(ctx context.Context) (*Metadata, error) {
	m, meta, err := r.store.Load(ctx, r.cfg.Name, 0)
	if err != nil {
		return nil, err
	}
	r.holder.Swap(m, meta.Version)
	r.logger.Info().
		Int("version", meta.Version).
		Int("users", meta.Users).
		Int("items", meta.Items).
		Float64("rmse", meta.RMSE).
		Msg("model loaded")
	return meta, nil
}

// Retrain trains on the current ratings, saves the result, prunes old
// versions and swaps the new model in. The served model is left untouched
// on any failure.
func (r *Refresher) Retrain(ctx context.Context) (Metadata, error) {
	ratings, err := r.source.AllRatings(ctx)
	if err != nil {
		return Metadata{}, fmt.Errorf("read training ratings: %w", err)
	}

	m, stats, err := r.trainer.Train(ctx, ratings)
	if err != nil {
		return Metadata{}, fmt.Errorf("train model: %w", err)
	}

	meta, err := r.store.Save(ctx, r.cfg.Name, m, MetadataFromStats(stats, r.trainer.Config().Factors))
	if err != nil {
		return Metadata{}, fmt.Errorf("save model: %w", err)
	}
	r.holder.Swap(m, meta.Version)

	if r.cfg.Keep > 0 {
		if removed, err := r.store.Prune(ctx, r.cfg.Name, r.cfg.Keep); err != nil {
			r.logger.Warn().Err(err).Msg("prune old model versions failed")
		} else if removed > 0 {
			r.logger.Debug().Int("removed", removed).Msg("pruned old model versions")
		}
	}

	r.logger.Info().
		Int("version", meta.Version).
		Int("ratings", stats.Ratings).
		Float64("rmse", stats.RMSE).
		Dur("duration", stats.Duration).
		Msg("model retrained")
	return meta, nil
}

// Ensure loads the latest model, training one first when none is stored
// and train is set. A store without a model and train unset is not an error.
func (r *Refresher) Ensure(ctx context.Context, train bool) error {
	_, err := r.LoadLatest(ctx)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, ErrModelNotFound):
		return err
	case !train:
		r.logger.Warn().Msg("no stored model; collaborative scoring disabled until one is trained")
		return nil
	}

	_, err = r.Retrain(ctx)
	if errors.Is(err, ErrNoRatings) {
		r.logger.Warn().Msg("no ratings yet; skipping initial training")
		return nil
	}
	return err
}

// Holder returns the holder the refresher publishes to.
func (r *Refresher) Holder() *Holder {
	return r.holder
}
