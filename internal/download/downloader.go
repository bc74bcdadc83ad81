// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Code-Poets/latex-online/pkg/types"
)

type (
	// job does the work of one Downloader inside folder.
	job func(ctx context.Context, folder types.FilesystemPath) Result

	// Downloader owns one bundle folder and the job that fills it. The job
	// runs at most once, on the first Trigger. All methods are safe for
	// concurrent use.
	Downloader struct {
		kind   JobKind
		folder types.FilesystemPath
		run    job
		fs     afero.Fs
		logger *log.Logger

		// gate decides whether the job or an early Dispose settles first.
		gate     sync.Once
		done     chan struct{}
		state    atomic.Int32
		disposed atomic.Bool

		mu     sync.Mutex
		result Result
	}
)

func newDownloader(kind JobKind, folder types.FilesystemPath, run job, fs afero.Fs, logger *log.Logger) *Downloader {
	d := &Downloader{
		kind:   kind,
		folder: folder,
		run:    run,
		fs:     fs,
		logger: logger.With("job", kind, "folder", folder),
		done:   make(chan struct{}),
	}
	d.state.Store(int32(StateNotStarted))
	return d
}

// Kind returns the job kind.
func (d *Downloader) Kind() JobKind { return d.kind }

// Folder returns the folder allocated to this Downloader, whether or not it
// exists yet.
func (d *Downloader) Folder() types.FilesystemPath { return d.folder }

// State returns the job state.
func (d *Downloader) State() State { return State(d.state.Load()) }

// Done returns a channel closed once the Result is settled.
func (d *Downloader) Done() <-chan struct{} { return d.done }

// Trigger starts the job on the first call and blocks until it settles.
// Every call, concurrent or later, returns the same Result.
//
// The job is detached from ctx cancellation: once started it runs to
// completion. Only ctx values are carried over.
func (d *Downloader) Trigger(ctx context.Context) Result {
	d.gate.Do(func() {
		d.state.Store(int32(StateRunning))
		go d.execute(context.WithoutCancel(ctx))
	})
	<-d.done
	res, _ := d.Result()
	return res
}

func (d *Downloader) execute(ctx context.Context) {
	var res Result
	defer func() {
		if r := recover(); r != nil {
			res = internalFailure(fmt.Errorf("job panicked: %v", r))
		}
		d.settle(res)
	}()

	d.logger.Debug("job started")
	res = d.run(ctx, d.folder)
}

func (d *Downloader) settle(res Result) {
	d.mu.Lock()
	d.result = res
	d.mu.Unlock()
	d.state.Store(int32(StateCompleted))
	close(d.done)

	switch f := res.Failure; {
	case f == nil:
		d.logger.Debug("job succeeded")
	case errors.Is(f, ErrDisposed):
		d.logger.Debug("disposed before start")
	case f.Kind.IsUser():
		d.logger.Info("job failed", "kind", f.Kind, "error", f)
	default:
		d.logger.Error("job failed", "kind", f.Kind, "error", f)
	}
}

// Result returns the settled Result. The second value is false while the job
// has not settled.
func (d *Downloader) Result() (Result, bool) {
	if d.State() != StateCompleted {
		return Result{}, false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result, true
}

// FolderPath returns the populated folder, or "" when the job has not
// settled or failed.
func (d *Downloader) FolderPath() types.FilesystemPath {
	res, _ := d.Result()
	return res.FolderPath
}

// UserError returns the user-facing failure message, if any.
func (d *Downloader) UserError() (string, bool) {
	res, ok := d.Result()
	if !ok {
		return "", false
	}
	return res.UserError()
}

// Disposed reports whether Dispose has been called.
func (d *Downloader) Disposed() bool { return d.disposed.Load() }

// Dispose removes the Downloader's folder from disk. A job that has not
// started never will: a later Trigger returns an internal failure wrapping
// ErrDisposed. A job in flight is awaited first; if ctx ends before it
// settles, Dispose returns ctx's error and the folder is removed later.
//
// Only the first call does any work; later calls return nil.
func (d *Downloader) Dispose(ctx context.Context) error {
	if !d.disposed.CompareAndSwap(false, true) {
		return nil
	}

	d.gate.Do(func() {
		d.settle(internalFailure(ErrDisposed))
	})

	select {
	case <-d.done:
	case <-ctx.Done():
		// Removal still happens once the job settles.
		go func() {
			<-d.done
			_ = d.removeFolder()
		}()
		return fmt.Errorf("disposing %s: waiting for job: %w", d.folder, ctx.Err())
	}

	return d.removeFolder()
}

func (d *Downloader) removeFolder() error {
	exists, err := afero.Exists(d.fs, string(d.folder))
	if err != nil {
		d.logger.Error("failed to stat folder during disposal", "error", err)
		return fmt.Errorf("disposing %s: %w", d.folder, err)
	}
	if !exists {
		return nil
	}

	if err := d.fs.RemoveAll(string(d.folder)); err != nil {
		d.logger.Error("failed to remove folder during disposal", "error", err)
		return fmt.Errorf("disposing %s: %w", d.folder, err)
	}
	d.logger.Debug("folder disposed")
	return nil
}
