// SPDX-License-Identifier: MPL-2.0

// Package download prepares disposable input bundles for the document build.
//
// A Manager owns a root directory and hands out Downloaders, one per bundle.
// Each Downloader is bound to a job (literal text, git clone, URL fetch,
// tarball extraction or JSON assembly) that runs at most once, the first time
// Trigger is called, and yields a Result: either the path of a populated
// tmp_<N> folder under the root, or a Failure. Dispose reclaims the folder.
//
// Failures are either user-facing (a FailureKind other than KindInternal,
// rendered by Failure.UserMessage) or internal (KindInternal, logged but never
// shown to end users).
package download
