// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package recommend implements the hybrid movie recommendation core.
//
// # Architecture
//
// A request is classified first, then served by one of two paths:
//
//   - Existing users: HybridBlender merges CollaborativeFilter (user
//     cosine similarity weighting latent-factor predictions) with
//     ContentFilter (genre overlap with highly rated items)
//   - New users: ColdStartEngine merges shuffled popular, trending and
//     diverse pools
//
// Classifier decides the path: a user with no rating, no liked genre and
// no tag is new.
//
// # Collaborators
//
// The core owns no storage. It reads through the Store interfaces
// (RatingSource, CatalogSource, PopularitySource, SignalSource) and scores
// with a Predictor. Every dependency is passed to a constructor:
//
//	store := recommend.NewBreakerStore(db, recommend.DefaultBreakerSettings(), logger)
//	rec, err := recommend.NewRecommender(store, model, recommend.DefaultConfig(), logger)
//
//	result, err := rec.Recommend(ctx, userID, 0)
//
// # Errors
//
// A model failure for one (user, item) pair is absorbed: SafePredictor logs
// it and the pair is skipped. A user without signal for a filter gets an
// empty list, not an error. A failed collaborator call fails the request
// with a *CollaboratorError that matches ErrCollaboratorFailure.
//
// # Determinism
//
// Cold-start shuffling uses an injected *rand.Rand (seed 42 by default).
// Collaborative ranking breaks score ties by item id. Content results keep
// the order returned by the store.
//
// # Thread Safety
//
// Components hold only configuration and collaborators and are safe for
// concurrent use. The cold-start random source is guarded by a mutex.
package recommend
