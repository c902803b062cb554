// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package ingest

import (
	"time"
)

// MovieLens file names, in load order.
const (
	FileMovies  = "movies.csv"
	FileTags    = "tags.csv"
	FileLinks   = "links.csv"
	FileRatings = "ratings.csv"
)

// loadOrder puts movies first so links can attach to them.
var loadOrder = []string{FileMovies, FileTags, FileLinks, FileRatings}

// FileStats holds the row counts of one input file.
type FileStats struct {
	// Read is the number of data rows read, including rows skipped on resume.
	Read int64 `json:"read"`

	// Resumed is the number of rows skipped because a checkpoint covered them.
	Resumed int64 `json:"resumed"`

	Imported int64 `json:"imported"`

	// Skipped counts unparseable rows and rows the store ignored.
	Skipped int64 `json:"skipped"`

	// Errors counts rows the store rejected.
	Errors int64 `json:"errors"`
}

// Stats holds statistics about a load.
type Stats struct {
	// Total is the number of data rows read across all files.
	Total int64 `json:"total"`

	// Processed is the number of rows handled in this run.
	Processed int64 `json:"processed"`

	Imported int64 `json:"imported"`
	Skipped  int64 `json:"skipped"`
	Errors   int64 `json:"errors"`

	// Files holds per-file counts keyed by file name.
	Files map[string]*FileStats `json:"files"`

	// Resumed reports whether the load continued from a checkpoint.
	Resumed bool `json:"resumed"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func newStats() *Stats {
	files := make(map[string]*FileStats, len(loadOrder))
	for _, f := range loadOrder {
		files[f] = &FileStats{}
	}
	return &Stats{Files: files, StartTime: time.Now()}
}

// Duration returns the duration of the load.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RecordsPerSecond returns the processing rate.
func (s *Stats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Processed) / duration
}

// clone returns a deep copy.
func (s *Stats) clone() *Stats {
	c := *s
	c.Files = make(map[string]*FileStats, len(s.Files))
	for name, fs := range s.Files {
		fsCopy := *fs
		c.Files[name] = &fsCopy
	}
	return &c
}

// Checkpoint records how far a load has progressed.
type Checkpoint struct {
	// Phase is the file being loaded when the checkpoint was written.
	Phase string `json:"phase"`

	// Rows maps a file name to its last durably written data row (1-based).
	Rows map[string]int64 `json:"rows"`

	// Completed lists files that were loaded to the end.
	Completed []string `json:"completed"`

	UpdatedAt time.Time `json:"updated_at"`
}

func newCheckpoint() *Checkpoint {
	return &Checkpoint{Rows: make(map[string]int64)}
}

func (c *Checkpoint) isCompleted(file string) bool {
	for _, f := range c.Completed {
		if f == file {
			return true
		}
	}
	return false
}
