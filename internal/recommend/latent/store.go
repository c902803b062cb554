// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package latent

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const (
	modelExt    = ".gob.gz"
	metadataExt = ".json"
)

// ErrModelNotFound is returned by Load when no version of a model exists.
var ErrModelNotFound = errors.New("model not found")

// Metadata describes a stored model version.
type Metadata struct {
	Name      string        `json:"name"`
	Version   int           `json:"version"`
	TrainedAt time.Time     `json:"trained_at"`
	SavedAt   time.Time     `json:"saved_at"`
	Ratings   int           `json:"ratings"`
	Users     int           `json:"users"`
	Items     int           `json:"items"`
	Factors   int           `json:"factors"`
	Epochs    int           `json:"epochs"`
	RMSE      float64       `json:"rmse"`
	Duration  time.Duration `json:"training_duration"`
	Checksum  string        `json:"checksum"`
	SizeBytes int64         `json:"size_bytes"`
}

// MetadataFromStats builds metadata for a freshly trained model.
func MetadataFromStats(stats TrainStats, factors int) Metadata {
	return Metadata{
		TrainedAt: time.Now(),
		Ratings:   stats.Ratings,
		Users:     stats.Users,
		Items:     stats.Items,
		Factors:   factors,
		Epochs:    stats.Epochs,
		RMSE:      stats.RMSE,
		Duration:  stats.Duration,
	}
}

// storedFile is the on-disk gob envelope.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// ModelStore persists versioned models in a directory.
type ModelStore struct {
	dir string
	mu  sync.RWMutex

	// latest version per model name
	versions map[string]int
}

// NewModelStore opens (creating if needed) a model directory.
func NewModelStore(dir string) (*ModelStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}

	s := &ModelStore{
		dir:      dir,
		versions: make(map[string]int),
	}

	all, err := s.scan()
	if err != nil {
		return nil, fmt.Errorf("scan existing models: %w", err)
	}
	for name, versions := range all {
		s.versions[name] = slices.Max(versions)
	}

	return s, nil
}

// Save writes m as the next version of name and returns its metadata.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *ModelStore) Save(ctx context.Context, name string, m *Model, meta Metadata) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}
	if m == nil {
		return Metadata{}, errors.New("save model: nil model")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(m); err != nil {
		return Metadata{}, fmt.Errorf("encode model: %w", err)
	}

	sum := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return Metadata{}, fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return Metadata{}, fmt.Errorf("finalize compression: %w", err)
	}

	meta.Name = name
	meta.Version = s.versions[name] + 1
	meta.Checksum = hex.EncodeToString(sum[:])
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now()

	var file bytes.Buffer
	if err := gob.NewEncoder(&file).Encode(storedFile{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return Metadata{}, fmt.Errorf("encode model file: %w", err)
	}
	if err := writeAtomic(s.path(name, meta.Version, modelExt), file.Bytes()); err != nil {
		return Metadata{}, fmt.Errorf("write model file: %w", err)
	}

	sidecar, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return Metadata{}, fmt.Errorf("encode metadata: %w", err)
	}
	if err := writeAtomic(s.path(name, meta.Version, metadataExt), sidecar); err != nil {
		return Metadata{}, fmt.Errorf("write metadata: %w", err)
	}

	s.versions[name] = meta.Version
	return meta, nil
}

// Load reads a model version. Version 0 loads the latest.
func (s *ModelStore) Load(ctx context.Context, name string, version int) (*Model, *Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		latest, ok := s.versions[name]
		if !ok {
			return nil, nil, fmt.Errorf("%s: %w", name, ErrModelNotFound)
		}
		version = latest
	}

	f, err := os.Open(s.path(name, version, modelExt))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s v%d: %w", name, version, ErrModelNotFound)
		}
		return nil, nil, fmt.Errorf("open model file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("read model file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // in-memory reader

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed data: %w", err)
	}

	sum := sha256.Sum256(raw)
	if got := hex.EncodeToString(sum[:]); got != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, got)
	}

	var m Model
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("decode model: %w", err)
	}
	if m.UserIndex == nil {
		m.UserIndex = make(map[int]int)
	}
	if m.ItemIndex == nil {
		m.ItemIndex = make(map[int]int)
	}
	if err := m.validate(); err != nil {
		return nil, nil, fmt.Errorf("corrupt model: %w", err)
	}

	return &m, &sf.Metadata, nil
}

// LatestVersion returns the newest stored version of name.
func (s *ModelStore) LatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.versions[name]
	return v, ok
}

// List returns the metadata sidecars of every stored version, newest first
// within each name. Unreadable sidecars are skipped.
func (s *ModelStore) List(ctx context.Context) ([]Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := s.scan()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	slices.Sort(names)

	var out []Metadata
	for _, name := range names {
		versions := all[name]
		slices.Sort(versions)
		slices.Reverse(versions)
		for _, v := range versions {
			data, err := os.ReadFile(s.path(name, v, metadataExt))
			if err != nil {
				continue
			}
			var meta Metadata
			if err := json.Unmarshal(data, &meta); err != nil {
				continue
			}
			out = append(out, meta)
		}
	}
	return out, nil
}

// Prune keeps the newest keep versions of name and removes the rest.
func (s *ModelStore) Prune(ctx context.Context, name string, keep int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.scan()
	if err != nil {
		return 0, err
	}

	versions := all[name]
	slices.Sort(versions)
	slices.Reverse(versions)

	removed := 0
	for _, v := range versions[min(keep, len(versions)):] {
		if err := os.Remove(s.path(name, v, modelExt)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove %s v%d: %w", name, v, err)
		}
		_ = os.Remove(s.path(name, v, metadataExt)) //nolint:errcheck // sidecar is optional
		removed++
	}
	return removed, nil
}

// scan lists every stored version per model name.
func (s *ModelStore) scan() (map[string][]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read model directory: %w", err)
	}

	out := make(map[string][]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, ok := strings.CutSuffix(entry.Name(), modelExt)
		if !ok {
			continue
		}
		name, version, ok := parseModelFilename(base)
		if !ok {
			continue
		}
		out[name] = append(out[name], version)
	}
	return out, nil
}

// parseModelFilename splits "svd_v3" into ("svd", 3).
func parseModelFilename(base string) (string, int, bool) {
	idx := strings.LastIndex(base, "_v")
	if idx <= 0 {
		return "", 0, false
	}
	version, err := strconv.Atoi(base[idx+2:])
	if err != nil || version <= 0 {
		return "", 0, false
	}
	return base[:idx], version, true
}

func (s *ModelStore) path(name string, version int, ext string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_v%d%s", name, version, ext))
}

// writeAtomic writes data to a temp file and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
