// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/database"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// Writer is the subset of the store the loader writes through.
// *database.DB implements it.
type Writer interface {
	UpsertMovies(ctx context.Context, movies []database.Movie) (int, error)
	UpsertLinks(ctx context.Context, links []database.Link) (int, error)
	InsertTags(ctx context.Context, tags []database.Tag) (int, error)
	InsertRatings(ctx context.Context, ratings []database.Rating) (int, error)
	ClearAll(ctx context.Context) error
}

var _ Writer = (*database.DB)(nil)

// optionalFiles may be absent from the data directory.
var optionalFiles = map[string]bool{
	FileTags:  true,
	FileLinks: true,
}

// Loader loads a MovieLens directory into the store.
type Loader struct {
	cfg      config.IngestConfig
	store    Writer
	progress ProgressTracker
	limiter  *rate.Limiter
	logger   zerolog.Logger

	mu      sync.RWMutex
	running bool
	stats   *Stats

	// cp is only touched between waves, never from worker goroutines.
	cp *Checkpoint
}

// NewLoader creates a loader. progress may be nil to disable resuming.
func NewLoader(cfg *config.IngestConfig, store Writer, progress ProgressTracker, logger zerolog.Logger) *Loader {
	c := *cfg
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.BatchSize < 1 {
		c.BatchSize = 1000
	}

	var limiter *rate.Limiter
	if c.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.RateLimit), c.Workers)
	}

	return &Loader{
		cfg:      c,
		store:    store,
		progress: progress,
		limiter:  limiter,
		logger:   logger.With().Str("component", "ingest").Logger(),
		stats:    newStats(),
	}
}

// Run loads every file in order. A canceled or failed run leaves its
// checkpoint in place, so the next Run resumes after the last written batch.
// The checkpoint is cleared when every file has been loaded.
func (l *Loader) Run(ctx context.Context) (*Stats, error) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil, fmt.Errorf("ingest already in progress")
	}
	l.running = true
	l.stats = newStats()
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	if err := l.prepare(ctx); err != nil {
		return l.finish(), err
	}

	l.logger.Info().
		Str("data_dir", l.cfg.DataDir).
		Int("workers", l.cfg.Workers).
		Int("batch_size", l.cfg.BatchSize).
		Int("max_ratings", l.cfg.MaxRatings).
		Bool("resumed", l.stats.Resumed).
		Msg("Starting ingest")

	for _, file := range loadOrder {
		if l.cp.isCompleted(file) {
			l.logger.Info().Str("file", file).Msg("Skipping file completed by a previous run")
			continue
		}
		if err := l.loadFile(ctx, file); err != nil {
			return l.finish(), fmt.Errorf("load %s: %w", file, err)
		}
	}

	if l.progress != nil {
		if err := l.progress.Clear(ctx); err != nil {
			l.logger.Warn().Err(err).Msg("Failed to clear ingest checkpoint")
		}
	}

	stats := l.finish()
	metrics.IngestDuration.Observe(stats.Duration().Seconds())
	l.logger.Info().
		Int64("total", stats.Total).
		Int64("processed", stats.Processed).
		Int64("imported", stats.Imported).
		Int64("skipped", stats.Skipped).
		Int64("errors", stats.Errors).
		Dur("duration", stats.Duration()).
		Float64("records_per_second", stats.RecordsPerSecond()).
		Msg("Ingest completed")

	return stats, nil
}

// prepare loads a checkpoint or, for a fresh load, clears existing data if configured.
func (l *Loader) prepare(ctx context.Context) error {
	l.cp = newCheckpoint()

	if l.progress != nil {
		cp, err := l.progress.Load(ctx)
		if err != nil {
			return fmt.Errorf("load checkpoint: %w", err)
		}
		if cp != nil {
			l.cp = cp
			l.mu.Lock()
			l.stats.Resumed = true
			l.mu.Unlock()
			l.logger.Info().
				Str("phase", cp.Phase).
				Strs("completed", cp.Completed).
				Time("checkpoint_at", cp.UpdatedAt).
				Msg("Resuming ingest from checkpoint")
			return nil
		}
	}

	if l.cfg.ClearExisting {
		if err := l.store.ClearAll(ctx); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
		l.logger.Info().Msg("Cleared existing data")
	}
	return nil
}

func (l *Loader) loadFile(ctx context.Context, file string) error {
	switch file {
	case FileMovies:
		return runFile(ctx, l, file, parseMovie, l.store.UpsertMovies)
	case FileTags:
		return runFile(ctx, l, file, parseTag, l.store.InsertTags)
	case FileLinks:
		return runFile(ctx, l, file, parseLink, l.store.UpsertLinks)
	case FileRatings:
		return runFile(ctx, l, file, parseRating, l.store.InsertRatings)
	default:
		return fmt.Errorf("unknown file %q", file)
	}
}

// batch is a run of parsed rows ending at data row last.
type batch[T any] struct {
	rows []T
	last int64
}

// runFile streams one CSV file through the worker pool. Rows are grouped
// into batches, and up to Workers batches form a wave that is written
// concurrently. The checkpoint advances once a whole wave has been written.
func runFile[T any](ctx context.Context, l *Loader, file string,
	parse func([]string) (T, error), write func(context.Context, []T) (int, error),
) error {
	path := filepath.Join(l.cfg.DataDir, file)
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if errors.Is(err, fs.ErrNotExist) && optionalFiles[file] {
		l.logger.Warn().Str("file", file).Msg("Optional file not found, skipping")
		return l.completeFile(ctx, file)
	}
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, 1<<16))
	r.FieldsPerRecord = len(headers[file])
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		l.logger.Warn().Str("file", file).Msg("File is empty")
		return l.completeFile(ctx, file)
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(file, header); err != nil {
		return err
	}

	resumeAfter := l.cp.Rows[file]
	var limit int64
	if file == FileRatings && l.cfg.MaxRatings > 0 {
		limit = int64(l.cfg.MaxRatings)
	}

	var (
		row     int64
		current []T
		wave    []batch[T]
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if limit > 0 && row >= limit {
			break
		}
		row++
		l.addRead(file, row <= resumeAfter)
		if row <= resumeAfter {
			continue
		}

		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return fmt.Errorf("read row %d: %w", row, err)
			}
			l.recordSkip(file, row, err)
			continue
		}

		item, err := parse(rec)
		if err != nil {
			l.recordSkip(file, row, err)
			continue
		}

		current = append(current, item)
		if len(current) < l.cfg.BatchSize {
			continue
		}
		wave = append(wave, batch[T]{rows: current, last: row})
		current = nil
		if len(wave) < l.cfg.Workers {
			continue
		}
		if err := flushWave(ctx, l, file, wave, write); err != nil {
			return err
		}
		wave = nil
	}

	if len(current) > 0 {
		wave = append(wave, batch[T]{rows: current, last: row})
	}
	if len(wave) > 0 {
		if err := flushWave(ctx, l, file, wave, write); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.completeFile(ctx, file)
}

// flushWave writes a wave of batches concurrently, then advances the checkpoint.
func flushWave[T any](ctx context.Context, l *Loader, file string, wave []batch[T],
	write func(context.Context, []T) (int, error),
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Workers)
	for _, b := range wave {
		g.Go(func() error {
			return writeBatch(gctx, l, file, b.rows, write)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	l.saveCheckpoint(ctx, file, wave[len(wave)-1].last)

	stats := l.Stats()
	fileStats := stats.Files[file]
	l.logger.Info().
		Str("file", file).
		Int64("read", fileStats.Read).
		Int64("imported", fileStats.Imported).
		Int64("skipped", fileStats.Skipped).
		Int64("errors", fileStats.Errors).
		Float64("records_per_second", stats.RecordsPerSecond()).
		Msg("Ingest progress")
	return nil
}

// writeBatch writes one batch. When the batch write fails, rows are retried
// one at a time so a single bad row costs only itself. Only cancellation
// is returned as an error.
func writeBatch[T any](ctx context.Context, l *Loader, file string, rows []T,
	write func(context.Context, []T) (int, error),
) error {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	n, err := write(ctx, rows)
	if err == nil {
		l.recordBatch(file, len(rows), n, 0)
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	l.logger.Warn().Err(err).Str("file", file).Int("rows", len(rows)).
		Msg("Batch write failed, retrying rows individually")

	imported, failed := 0, 0
	for i := range rows {
		n, err := write(ctx, rows[i:i+1])
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			failed++
			l.logger.Warn().Err(err).Str("file", file).Msg("Row write failed")
			continue
		}
		imported += n
	}
	l.recordBatch(file, len(rows), imported, failed)
	return nil
}

func (l *Loader) addRead(file string, resumed bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fileStats := l.stats.Files[file]
	fileStats.Read++
	l.stats.Total++
	if resumed {
		fileStats.Resumed++
	}
}

func (l *Loader) recordSkip(file string, row int64, err error) {
	l.mu.Lock()
	l.stats.Files[file].Skipped++
	l.stats.Skipped++
	l.stats.Processed++
	l.mu.Unlock()

	metrics.RecordIngest(file, 0, 1, 0)
	l.logger.Debug().Err(err).Str("file", file).Int64("row", row).Msg("Skipping row")
}

func (l *Loader) recordBatch(file string, rows, imported, failed int) {
	skipped := rows - imported - failed

	l.mu.Lock()
	fileStats := l.stats.Files[file]
	fileStats.Imported += int64(imported)
	fileStats.Skipped += int64(skipped)
	fileStats.Errors += int64(failed)
	l.stats.Imported += int64(imported)
	l.stats.Skipped += int64(skipped)
	l.stats.Errors += int64(failed)
	l.stats.Processed += int64(rows)
	l.mu.Unlock()

	metrics.RecordIngest(file, imported, skipped, failed)
}

func (l *Loader) saveCheckpoint(ctx context.Context, file string, row int64) {
	l.cp.Phase = file
	l.cp.Rows[file] = row
	l.cp.UpdatedAt = time.Now()
	if l.progress == nil {
		return
	}
	if err := l.progress.Save(ctx, l.cp); err != nil {
		l.logger.Warn().Err(err).Str("file", file).Msg("Failed to save ingest checkpoint")
	}
}

func (l *Loader) completeFile(ctx context.Context, file string) error {
	l.cp.Completed = append(l.cp.Completed, file)
	l.cp.Phase = file
	l.cp.UpdatedAt = time.Now()
	if l.progress != nil {
		if err := l.progress.Save(ctx, l.cp); err != nil {
			l.logger.Warn().Err(err).Str("file", file).Msg("Failed to save ingest checkpoint")
		}
	}
	l.logger.Info().Str("file", file).Msg("File loaded")
	return nil
}

func (l *Loader) finish() *Stats {
	l.mu.Lock()
	l.stats.EndTime = time.Now()
	l.mu.Unlock()
	return l.Stats()
}

// Stats returns a copy of the current statistics.
func (l *Loader) Stats() *Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stats.clone()
}

// IsRunning reports whether a load is in progress.
func (l *Loader) IsRunning() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.running
}
