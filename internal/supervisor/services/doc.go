// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package services adapts reelrank components to suture.Service.
//
//   - HTTPServerService: the API server with graceful shutdown
//   - IngestService: the one-shot MovieLens load
//   - RetrainService: periodic latent-factor retraining
//
// Each wrapper depends on a small interface (HTTPServer, Loader, Retrainer)
// rather than the concrete type, so tests drive them with stubs.
package services
