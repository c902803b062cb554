// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package ingest loads a MovieLens dataset directory into the DuckDB store.

Files are read in a fixed order so that later files can reference rows
written by earlier ones:

	movies.csv   movieId,title,genres            (required)
	tags.csv     userId,movieId,tag,timestamp     (optional)
	links.csv    movieId,imdbId,tmdbId            (optional)
	ratings.csv  userId,movieId,rating,timestamp  (required)

Rows are parsed, grouped into batches of IngestConfig.BatchSize and written
by a bounded errgroup pool. Up to IngestConfig.Workers batches make up a
wave; once a wave is written the checkpoint advances to its last row.
Batch writes are paced by a token bucket when IngestConfig.RateLimit is set.

Malformed rows are skipped and counted. When a batch write fails, its rows
are retried individually so one bad row does not drop its neighbours.

# Resuming

Checkpoints are stored in BadgerDB through a ProgressTracker:

	progress, err := ingest.OpenBadgerProgress(cfg.Ingest.ProgressPath)
	if err != nil {
	    return err
	}
	defer progress.Close()

	loader := ingest.NewLoader(&cfg.Ingest, db, progress, log.Logger)
	stats, err := loader.Run(ctx)

A run that is canceled or fails keeps its checkpoint, and the next Run
skips the rows already written. The checkpoint is removed after a complete
load. ClearExisting only applies to loads that start without a checkpoint.

# Metrics

Per-file row outcomes are exported as reelrank_ingest_records_total and
the duration of completed loads as reelrank_ingest_duration_seconds.
*/
package ingest
