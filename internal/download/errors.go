// SPDX-License-Identifier: MPL-2.0

package download

import (
	"errors"
	"fmt"

	"github.com/Code-Poets/latex-online/pkg/types"
)

var (
	// ErrDisposed is the cause of the internal failure returned by Trigger
	// on a Downloader disposed before its job started.
	ErrDisposed = errors.New("downloader disposed")
	// ErrRootSetup is returned when the root directory cannot be prepared.
	ErrRootSetup = errors.New("cannot prepare root directory")
	// ErrFolderExists is the cause of an internal failure when a job's
	// folder is already present on disk.
	ErrFolderExists = errors.New("folder already exists")
	// ErrInvalidPayload is returned when a JSON assembly payload is rejected.
	ErrInvalidPayload = errors.New("invalid payload")
)

type (
	// RootSetupError is returned by NewManager.
	RootSetupError struct {
		Root  types.FilesystemPath
		Cause error
	}

	// InvalidPayloadError is returned by DecodePayload.
	InvalidPayloadError struct {
		Cause error
	}
)

// Error implements the error interface for RootSetupError.
func (e *RootSetupError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrRootSetup, e.Root, e.Cause)
}

// Unwrap returns both the sentinel and the cause.
func (e *RootSetupError) Unwrap() []error { return []error{ErrRootSetup, e.Cause} }

// Error implements the error interface for InvalidPayloadError.
func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidPayload, e.Cause)
}

// Unwrap returns both the sentinel and the cause.
func (e *InvalidPayloadError) Unwrap() []error { return []error{ErrInvalidPayload, e.Cause} }
