// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package logging provides the process-wide zerolog logger for reelrank.
//
// Call Init once from main with the settings of the logging config section.
// Components that need a logger receive a zerolog.Logger by value and derive
// a child with a "component" field:
//
//	logger := logging.WithComponent("recommender")
//	logger.Info().Int("user_id", id).Msg("recommendations served")
//
// # Request Scope
//
// HTTP middleware stores a request id in the context with ContextWithRequestID.
// Ctx(ctx) returns a logger carrying that id and, for background work such as
// ingestion runs, a correlation id.
//
// # slog Bridge
//
// NewSlogLogger adapts zerolog to log/slog for libraries that only accept
// *slog.Logger, such as the suture supervisor event hook.
//
// # Configuration
//
// Environment variables (through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include file:line (default: false)
package logging
