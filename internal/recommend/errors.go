// Reelrank - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrPredictionUnavailable marks a (user, item) pair the model could not score.
	// It is absorbed by the caller and never fails a request.
	ErrPredictionUnavailable = errors.New("prediction unavailable")

	// ErrCollaboratorFailure marks a failed storage or query call.
	// It fails the enclosing recommendation request.
	ErrCollaboratorFailure = errors.New("collaborator failure")

	// ErrNoModel is returned by SafePredictor when no model is loaded.
	ErrNoModel = errors.New("no latent-factor model loaded")
)

// CollaboratorError wraps a failed collaborator call with the operation name.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both the failure class and the underlying cause.
func (e *CollaboratorError) Unwrap() []error {
	return []error{ErrCollaboratorFailure, e.Err}
}

// collaboratorErr wraps err unless it is nil or already a CollaboratorError.
func collaboratorErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return err
	}
	return &CollaboratorError{Op: op, Err: err}
}
