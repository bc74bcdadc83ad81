// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOption is returned for a transform key outside the allow-list.
	ErrUnknownOption = errors.New("unknown transform option")
	// ErrInvalidOptionValue is returned when an option parameter fails validation.
	ErrInvalidOptionValue = errors.New("invalid transform option value")
	// ErrInvalidTransform is returned when the transform itself is not a JSON object.
	ErrInvalidTransform = errors.New("invalid transform")
)

type (
	// OptionError reports which option was rejected and why.
	OptionError struct {
		Option OptionName
		Cause  error
	}

	// ToolError is returned when the vector-graphics tool ran but failed.
	ToolError struct {
		Image    string
		ExitCode int
		TimedOut bool
		Output   string
	}
)

// Error implements the error interface for OptionError.
func (e *OptionError) Error() string {
	return fmt.Sprintf("transform option %q: %v", e.Option, e.Cause)
}

// Unwrap returns the cause, which wraps ErrUnknownOption or ErrInvalidOptionValue.
func (e *OptionError) Unwrap() error { return e.Cause }

// Error implements the error interface for ToolError.
func (e *ToolError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("transforming %s: tool timed out", e.Image)
	}
	return fmt.Sprintf("transforming %s: tool exited with status %d", e.Image, e.ExitCode)
}
