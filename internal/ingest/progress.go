// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// progressKey is the BadgerDB key for the load checkpoint.
const progressKey = "ingest:movielens:checkpoint"

// ProgressTracker persists load checkpoints.
type ProgressTracker interface {
	// Save persists the checkpoint.
	Save(ctx context.Context, cp *Checkpoint) error

	// Load returns the last saved checkpoint, or nil if none exists.
	Load(ctx context.Context) (*Checkpoint, error)

	// Clear removes the saved checkpoint.
	Clear(ctx context.Context) error
}

// BadgerProgress implements ProgressTracker using BadgerDB, so an
// interrupted load resumes across restarts.
type BadgerProgress struct {
	db    *badger.DB
	owned bool
}

// OpenBadgerProgress opens (or creates) a Badger directory at path for checkpoints.
// The returned tracker owns the database; call Close when done.
func OpenBadgerProgress(path string) (*BadgerProgress, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20 // checkpoints are tiny
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for ingest progress: %w", err)
	}
	return &BadgerProgress{db: db, owned: true}, nil
}

// NewBadgerProgress wraps an existing BadgerDB instance. The caller keeps ownership.
func NewBadgerProgress(db *badger.DB) *BadgerProgress {
	return &BadgerProgress{db: db}
}

// Save persists the checkpoint to BadgerDB.
func (p *BadgerProgress) Save(ctx context.Context, cp *Checkpoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(progressKey), data)
	})
}

// Load retrieves the last saved checkpoint from BadgerDB.
// Returns nil, nil if none has been saved.
func (p *BadgerProgress) Load(ctx context.Context) (*Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		cp    Checkpoint
		found bool
	)
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(progressKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cp)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	if !found {
		return nil, nil
	}
	if cp.Rows == nil {
		cp.Rows = make(map[string]int64)
	}
	return &cp, nil
}

// Clear removes the saved checkpoint.
func (p *BadgerProgress) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(progressKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close closes the underlying database if this tracker opened it.
func (p *BadgerProgress) Close() error {
	if !p.owned {
		return nil
	}
	return p.db.Close()
}

// InMemoryProgress implements ProgressTracker in memory, for tests and
// for loads that do not need to resume.
type InMemoryProgress struct {
	mu sync.Mutex
	cp *Checkpoint
}

// NewInMemoryProgress creates a new in-memory progress tracker.
func NewInMemoryProgress() *InMemoryProgress {
	return &InMemoryProgress{}
}

// Save stores a copy of the checkpoint.
func (p *InMemoryProgress) Save(_ context.Context, cp *Checkpoint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cp = copyCheckpoint(cp)
	return nil
}

// Load returns a copy of the stored checkpoint.
func (p *InMemoryProgress) Load(_ context.Context) (*Checkpoint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cp == nil {
		return nil, nil
	}
	return copyCheckpoint(p.cp), nil
}

// Clear removes the stored checkpoint.
func (p *InMemoryProgress) Clear(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cp = nil
	return nil
}

func copyCheckpoint(cp *Checkpoint) *Checkpoint {
	c := *cp
	c.Rows = make(map[string]int64, len(cp.Rows))
	for k, v := range cp.Rows {
		c.Rows[k] = v
	}
	c.Completed = append([]string(nil), cp.Completed...)
	return &c
}
