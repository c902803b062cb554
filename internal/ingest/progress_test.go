// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func newMemoryBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open in-memory badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleCheckpoint() *Checkpoint {
	return &Checkpoint{
		Phase:     FileRatings,
		Rows:      map[string]int64{FileMovies: 9742, FileRatings: 4000},
		Completed: []string{FileMovies, FileTags, FileLinks},
		UpdatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProgressTrackers(t *testing.T) {
	t.Parallel()

	trackers := map[string]func(t *testing.T) ProgressTracker{
		"badger": func(t *testing.T) ProgressTracker { return NewBadgerProgress(newMemoryBadger(t)) },
		"memory": func(*testing.T) ProgressTracker { return NewInMemoryProgress() },
	}

	for name, newTracker := range trackers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			p := newTracker(t)

			cp, err := p.Load(ctx)
			if err != nil {
				t.Fatalf("Load() on empty tracker error = %v", err)
			}
			if cp != nil {
				t.Fatalf("Load() on empty tracker = %+v, want nil", cp)
			}

			if err := p.Save(ctx, sampleCheckpoint()); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			cp, err = p.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cp == nil {
				t.Fatal("Load() = nil, want checkpoint")
			}
			if cp.Phase != FileRatings || cp.Rows[FileRatings] != 4000 || len(cp.Completed) != 3 {
				t.Errorf("Load() = %+v, want saved checkpoint", cp)
			}
			if !cp.isCompleted(FileLinks) || cp.isCompleted(FileRatings) {
				t.Errorf("Completed = %v, want movies, tags and links only", cp.Completed)
			}

			if err := p.Clear(ctx); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if err := p.Clear(ctx); err != nil {
				t.Errorf("Clear() twice error = %v", err)
			}
			cp, err = p.Load(ctx)
			if err != nil || cp != nil {
				t.Errorf("Load() after Clear = (%v, %v), want (nil, nil)", cp, err)
			}
		})
	}
}

func TestInMemoryProgress_CopiesCheckpoint(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := NewInMemoryProgress()

	cp := sampleCheckpoint()
	if err := p.Save(ctx, cp); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	cp.Rows[FileRatings] = 1
	cp.Completed[0] = "changed"

	got, _ := p.Load(ctx)
	if got.Rows[FileRatings] != 4000 || got.Completed[0] != FileMovies {
		t.Errorf("Load() = %+v, want unaffected by caller mutation", got)
	}
}

func TestBadgerProgress_CanceledContext(t *testing.T) {
	t.Parallel()
	p := NewBadgerProgress(newMemoryBadger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Save(ctx, sampleCheckpoint()); err == nil {
		t.Error("Save() with canceled context error = nil, want error")
	}
	if _, err := p.Load(ctx); err == nil {
		t.Error("Load() with canceled context error = nil, want error")
	}
}

func TestOpenBadgerProgress_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	p, err := OpenBadgerProgress(dir)
	if err != nil {
		t.Fatalf("OpenBadgerProgress() error = %v", err)
	}
	if err := p.Save(ctx, sampleCheckpoint()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	p, err = OpenBadgerProgress(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer p.Close()

	cp, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cp == nil || cp.Rows[FileMovies] != 9742 {
		t.Errorf("Load() after reopen = %+v, want saved checkpoint", cp)
	}
}
