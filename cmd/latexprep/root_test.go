// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Code-Poets/latex-online/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v0.4.0"
		Commit = "9f1c2ab"
		BuildDate = "2026-03-02T08:00:00Z"

		want := "v0.4.0 (commit: 9f1c2ab, built: 2026-03-02T08:00:00Z)"
		if got := getVersionString(); got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestNewRootCommand_Tree(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{Config: &stubProvider{cfg: testConfig(t)}}))
	for _, path := range [][]string{
		{"prepare", "text"},
		{"prepare", "git"},
		{"prepare", "url"},
		{"prepare", "tarball"},
		{"prepare", "json"},
		{"config", "show"},
		{"config", "path"},
	} {
		found, _, err := root.Find(path)
		if err != nil || found.Name() != path[len(path)-1] {
			t.Errorf("Find(%v) = %v, %v", path, found, err)
		}
	}
	for _, flag := range []string{"config", "root", "verbose", "json"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing global flag --%s", flag)
		}
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("boom")
	if got := formatErrorForDisplay(plain, false); got != "boom" {
		t.Errorf("plain error = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("read payload").
		WithSuggestion("Check the path").
		Wrap(plain).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "failed to read payload: boom") || !strings.Contains(got, "Check the path") {
		t.Errorf("actionable error = %q", got)
	}
}

func TestRenderIssue_IgnoresPlainErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderIssue(&buf, errors.New("no issue attached"))
	if buf.Len() != 0 {
		t.Errorf("renderIssue wrote %q for a plain error", buf.String())
	}
}
