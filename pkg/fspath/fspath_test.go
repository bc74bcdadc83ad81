// SPDX-License-Identifier: MPL-2.0

package fspath_test

import (
	"path/filepath"
	"testing"

	"github.com/Code-Poets/latex-online/pkg/fspath"
	"github.com/Code-Poets/latex-online/pkg/types"
)

func TestJoin(t *testing.T) {
	t.Parallel()

	got := fspath.Join(types.FilesystemPath("root"), types.FilesystemPath("tmp_1"))
	want := types.FilesystemPath(filepath.Join("root", "tmp_1"))
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestJoinStr(t *testing.T) {
	t.Parallel()

	got := fspath.JoinStr(types.FilesystemPath("root"), "tmp_7", "main.tex")
	want := types.FilesystemPath(filepath.Join("root", "tmp_7", "main.tex"))
	if got != want {
		t.Errorf("JoinStr() = %q, want %q", got, want)
	}
}

func TestJoinName(t *testing.T) {
	t.Parallel()

	got := fspath.JoinName(types.FilesystemPath("root/tmp_2"), types.FileName("figure.svg"))
	want := types.FilesystemPath(filepath.Join("root", "tmp_2", "figure.svg"))
	if got != want {
		t.Errorf("JoinName() = %q, want %q", got, want)
	}
}

func TestBase(t *testing.T) {
	t.Parallel()

	if got := fspath.Base(types.FilesystemPath("root/tmp_3")); got != "tmp_3" {
		t.Errorf("Base() = %q, want %q", got, "tmp_3")
	}
}

func TestAbs(t *testing.T) {
	t.Parallel()

	got, err := fspath.Abs(types.FilesystemPath("."))
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	wantRaw, _ := filepath.Abs(".")
	if got != types.FilesystemPath(wantRaw) {
		t.Errorf("Abs() = %q, want %q", got, wantRaw)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	got := fspath.Clean(types.FilesystemPath("root/tmp_1/../tmp_1/./main.tex"))
	want := types.FilesystemPath(filepath.Clean("root/tmp_1/../tmp_1/./main.tex"))
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}
