// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to manage Docker containers. All files
// carry the integration build tag:
//
//	go test -tags integration ./internal/cache/...
//
// # Redis Container
//
// RedisContainer backs the shared item metadata cache tests:
//
//	container, err := testinfra.NewRedisContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, container)
//
//	client := redis.NewClient(&redis.Options{Addr: container.Addr})
//
// Tests call SkipIfNoDocker first so they skip cleanly on machines without Docker.
package testinfra
