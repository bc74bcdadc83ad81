// SPDX-License-Identifier: MPL-2.0

package download

import (
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"

	"github.com/Code-Poets/latex-online/internal/testutil"
	"github.com/Code-Poets/latex-online/pkg/types"
)

// countingFs counts RemoveAll calls.
type countingFs struct {
	afero.Fs
	removes atomic.Int32
}

func (c *countingFs) RemoveAll(path string) error {
	c.removes.Add(1)
	return c.Fs.RemoveAll(path)
}

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	root := types.FilesystemPath(filepath.Join(t.TempDir(), "bundles"))
	m, err := NewManager(root, opts...)
	if err != nil {
		t.Fatalf("NewManager(%q) error: %v", root, err)
	}
	return m
}

func requireBinary(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("skipping: %s not found in PATH", name)
	}
	return path
}

func assertExists(t *testing.T, path types.FilesystemPath, want bool) {
	t.Helper()
	if got := testutil.PathExists(t, string(path)); got != want {
		t.Errorf("exists(%s) = %v, want %v", path, got, want)
	}
}

func assertInternal(t *testing.T, res Result) *Failure {
	t.Helper()
	if res.Failure == nil {
		t.Fatalf("expected internal failure, got success %+v", res)
	}
	if res.Failure.Kind != KindInternal {
		t.Fatalf("Failure.Kind = %s, want internal (%v)", res.Failure.Kind, res.Failure)
	}
	if !res.FolderPath.IsZero() {
		t.Errorf("FolderPath = %q on failure", res.FolderPath)
	}
	if msg, ok := res.UserError(); ok {
		t.Errorf("internal failure exposes user error %q", msg)
	}
	return res.Failure
}
