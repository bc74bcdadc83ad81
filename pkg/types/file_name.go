// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFileName is the sentinel error wrapped by InvalidFileNameError.
var ErrInvalidFileName = errors.New("invalid file name")

type (
	// FileName is a single path element naming a file inside a bundle folder.
	// A valid name is non-empty, contains no path separators and is neither
	// "." nor "..", so joining it onto a folder never escapes that folder.
	FileName string

	// InvalidFileNameError is returned when a FileName fails validation.
	InvalidFileNameError struct {
		Value  FileName
		Reason string
	}
)

// String returns the string representation of the FileName.
func (n FileName) String() string { return string(n) }

// Validate returns nil if the FileName is a plain single-element name,
// or an error wrapping ErrInvalidFileName otherwise.
func (n FileName) Validate() error {
	s := string(n)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidFileNameError{Value: n, Reason: "must be non-empty"}
	case s == "." || s == "..":
		return &InvalidFileNameError{Value: n, Reason: "must not be a relative directory reference"}
	case strings.ContainsAny(s, `/\`):
		return &InvalidFileNameError{Value: n, Reason: "must not contain path separators"}
	case strings.ContainsRune(s, 0):
		return &InvalidFileNameError{Value: n, Reason: "must not contain NUL bytes"}
	}
	return nil
}

// Error implements the error interface for InvalidFileNameError.
func (e *InvalidFileNameError) Error() string {
	return fmt.Sprintf("invalid file name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidFileName for errors.Is() compatibility.
func (e *InvalidFileNameError) Unwrap() error { return ErrInvalidFileName }
