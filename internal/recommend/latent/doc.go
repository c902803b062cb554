// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package latent provides the biased matrix-factorization rating model used
// by the collaborative filter.
//
// A Model predicts the explicit rating a user would give an item:
//
//	r̂(u,i) = μ + b_u + b_i + q_i · p_u
//
// clipped to the MovieLens rating scale [0.5, 5.0]. Users or items that were
// not seen during training contribute zero bias and zero factors, so the
// prediction falls back towards the global mean.
//
// # Training
//
// Trainer fits a Model with stochastic gradient descent over explicit
// (user, item, rating) triples. Training is deterministic for a given seed
// and input order and stops early when its context is cancelled.
//
// # Persistence
//
// ModelStore keeps versioned, gzip-compressed gob files with a SHA-256
// checksum and a JSON metadata sidecar:
//
//	{dir}/{name}_v{version}.gob.gz
//	{dir}/{name}_v{version}.json
//
// # Serving and Retraining
//
// Holder publishes the active model to request goroutines through an atomic
// pointer. Refresher reads all ratings, trains, saves a new version, prunes
// old ones and swaps the result into the Holder:
//
//	holder := latent.NewHolder(nil, 0)
//	r := latent.NewRefresher(db, trainer, store, holder, latent.RefresherConfig{Name: "svd", Keep: 3}, logger)
//	if err := r.Ensure(ctx, cfg.Model.TrainOnStartup); err != nil { ... }
//
// # Thread Safety
//
// A Model is immutable once trained or loaded and safe for concurrent
// Predict calls. ModelStore serializes writes with a mutex.
package latent
