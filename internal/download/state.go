// SPDX-License-Identifier: MPL-2.0

package download

import (
	"errors"
	"fmt"
)

const (
	// StateNotStarted indicates the job has not been triggered yet.
	StateNotStarted State = iota
	// StateRunning indicates the job is in flight.
	StateRunning
	// StateCompleted is terminal: the Result is settled.
	StateCompleted
)

// ErrInvalidState is returned when a State value is not one of the defined states.
var ErrInvalidState = errors.New("invalid state")

type (
	// State is the lifecycle state of a Downloader's job.
	State int32

	// InvalidStateError is returned when a State value is not recognized.
	// It wraps ErrInvalidState for errors.Is() compatibility.
	InvalidStateError struct {
		Value State
	}
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Validate returns nil if the State is one of the defined states,
// or an error wrapping ErrInvalidState if it is not.
func (s State) Validate() error {
	switch s {
	case StateNotStarted, StateRunning, StateCompleted:
		return nil
	default:
		return &InvalidStateError{Value: s}
	}
}

// Error implements the error interface for InvalidStateError.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %d (valid: 0=not-started, 1=running, 2=completed)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
