// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// ErrInjected is returned by FaultyFs for every injected failure.
var ErrInjected = errors.New("injected filesystem failure")

// FaultyFs wraps an afero.Fs and fails writes to paths whose base name is in
// FailWrites, and RemoveAll for paths ending in FailRemove.
type FaultyFs struct {
	afero.Fs
	FailWrites []string
	FailRemove string
}

// OpenFile fails for files opened for writing whose name is in FailWrites.
func (f *FaultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 && f.failsWrite(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: ErrInjected}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

// Create fails for names in FailWrites.
func (f *FaultyFs) Create(name string) (afero.File, error) {
	if f.failsWrite(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: ErrInjected}
	}
	return f.Fs.Create(name)
}

// RemoveAll fails for paths ending in FailRemove.
func (f *FaultyFs) RemoveAll(path string) error {
	if f.FailRemove != "" && strings.HasSuffix(path, f.FailRemove) {
		return &os.PathError{Op: "removeall", Path: path, Err: ErrInjected}
	}
	return f.Fs.RemoveAll(path)
}

func (f *FaultyFs) failsWrite(name string) bool {
	base := name[strings.LastIndexAny(name, `/\`)+1:]
	for _, n := range f.FailWrites {
		if n == base {
			return true
		}
	}
	return false
}
