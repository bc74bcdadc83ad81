// SPDX-License-Identifier: MPL-2.0

package download

// Job kinds, one per acquisition strategy.
const (
	JobText JobKind = "text"
	JobGit  JobKind = "git"
	JobURL  JobKind = "url"
	// JobTarball extracts a local archive.
	JobTarball JobKind = "tarball"
	// JobJSON assembles a document from a JSON payload.
	JobJSON JobKind = "json"
)

// JobKind names the strategy a Downloader was created with.
type JobKind string

// String returns the string representation of the JobKind.
func (k JobKind) String() string { return string(k) }
