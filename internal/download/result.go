// SPDX-License-Identifier: MPL-2.0

package download

import (
	"fmt"

	"github.com/Code-Poets/latex-online/internal/transform"
	"github.com/Code-Poets/latex-online/pkg/types"
)

const (
	// KindInternal is a failure whose details must not reach end users.
	KindInternal FailureKind = iota
	// KindCloneFailed means git could not clone the repository.
	KindCloneFailed
	// KindBadStatus means the server answered outside the 2xx/3xx band.
	KindBadStatus
	// KindFetchError means the request or the transfer itself failed.
	KindFetchError
	// KindExtractFailed means tar could not extract the archive.
	KindExtractFailed
	// KindInvalidImageData means an image was not a decodable data URI.
	KindInvalidImageData
)

type (
	// FailureKind classifies a Failure.
	FailureKind int

	// Failure describes why a job did not produce a folder. Only the fields
	// relevant to Kind are set.
	Failure struct {
		Kind       FailureKind
		URL        string
		StatusCode int
		ImageName  types.FileName
		Option     transform.OptionName
		Cause      error
	}

	// Result is the settled outcome of a job. Exactly one of FolderPath and
	// Failure is set.
	Result struct {
		FolderPath types.FilesystemPath
		Failure    *Failure
	}

	// Output is the JSON shape handed to callers. Both fields absent means
	// an internal failure.
	Output struct {
		FolderPath string `json:"folderPath,omitempty"`
		UserError  string `json:"userError,omitempty"`
	}
)

// String returns a short name for the kind, used in logs.
func (k FailureKind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindCloneFailed:
		return "clone-failed"
	case KindBadStatus:
		return "bad-status"
	case KindFetchError:
		return "fetch-error"
	case KindExtractFailed:
		return "extract-failed"
	case KindInvalidImageData:
		return "invalid-image-data"
	default:
		return "unknown"
	}
}

// IsUser reports whether failures of this kind are shown to end users.
func (k FailureKind) IsUser() bool { return k != KindInternal }

// UserMessage renders the end-user text for f. Internal failures render as
// the empty string.
func (f *Failure) UserMessage() string {
	switch f.Kind {
	case KindCloneFailed:
		return fmt.Sprintf("failed to clone git repository %s", f.URL)
	case KindBadStatus:
		return fmt.Sprintf("failed to download URL %s - got response status %d", f.URL, f.StatusCode)
	case KindFetchError:
		return fmt.Sprintf("error while loading %s: %v", f.URL, f.Cause)
	case KindExtractFailed:
		return "failed to extract tarball"
	case KindInvalidImageData:
		return fmt.Sprintf("failed to save image %s -- expected image data URI", f.ImageName)
	default:
		return ""
	}
}

// Error implements the error interface. Unlike UserMessage it includes the
// cause, for logs.
func (f *Failure) Error() string {
	msg := f.UserMessage()
	if msg == "" {
		msg = "internal failure"
	}
	if f.Cause != nil && f.Kind != KindFetchError {
		return fmt.Sprintf("%s: %v", msg, f.Cause)
	}
	return msg
}

// Unwrap returns the cause.
func (f *Failure) Unwrap() error { return f.Cause }

// OK reports whether the job produced a folder.
func (r Result) OK() bool { return r.Failure == nil && !r.FolderPath.IsZero() }

// UserError returns the end-user message, if the failure has one.
func (r Result) UserError() (string, bool) {
	if r.Failure == nil || !r.Failure.Kind.IsUser() {
		return "", false
	}
	return r.Failure.UserMessage(), true
}

// Output converts r into its JSON presentation.
func (r Result) Output() Output {
	msg, _ := r.UserError()
	return Output{FolderPath: string(r.FolderPath), UserError: msg}
}

func success(folder types.FilesystemPath) Result {
	return Result{FolderPath: folder}
}

func failed(f *Failure) Result {
	return Result{Failure: f}
}

func internalFailure(cause error) Result {
	return failed(&Failure{Kind: KindInternal, Cause: cause})
}
