// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package latent

import (
	"errors"
	"sync/atomic"
)

// ErrNotLoaded is returned by Holder.Predict before any model is stored.
var ErrNotLoaded = errors.New("model not loaded")

// Holder publishes the active model to concurrent readers and lets a
// retrained model replace it without locking the request path.
type Holder struct {
	model   atomic.Pointer[Model]
	version atomic.Int64
}

// NewHolder returns a holder serving m. m may be nil.
func NewHolder(m *Model, version int) *Holder {
	h := &Holder{}
	if m != nil {
		h.Swap(m, version)
	}
	return h
}

// Predict scores (userID, itemID) with the current model.
func (h *Holder) Predict(userID, itemID int) (float64, error) {
	m := h.model.Load()
	if m == nil {
		return 0, ErrNotLoaded
	}
	return m.Predict(userID, itemID)
}

// Swap installs m as the current model.
func (h *Holder) Swap(m *Model, version int) {
	h.model.Store(m)
	h.version.Store(int64(version))
}

// Current returns the active model, or nil.
func (h *Holder) Current() *Model {
	return h.model.Load()
}

// Loaded reports whether a model is being served.
func (h *Holder) Loaded() bool {
	return h.model.Load() != nil
}

// Version is the store version of the active model, 0 when none.
func (h *Holder) Version() int {
	return int(h.version.Load())
}
