// SPDX-License-Identifier: MPL-2.0

package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Code-Poets/latex-online/internal/testutil"
	"github.com/Code-Poets/latex-online/pkg/types"
)

func newFakeDownloader(fs afero.Fs, run job) *Downloader {
	return newDownloader(JobText, "/bundles/tmp_1", run, fs, log.New(io.Discard))
}

func TestDownloader_TriggerRunsJobOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	d := newFakeDownloader(afero.NewMemMapFs(), func(_ context.Context, folder types.FilesystemPath) Result {
		calls.Add(1)
		<-release
		return success(folder)
	})

	const callers = 16
	results := make([]Result, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = d.Trigger(context.Background())
		}()
	}

	// Let every caller reach the gate before the job finishes.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("job ran %d times, want 1", got)
	}
	for i, res := range results {
		if res != results[0] {
			t.Errorf("results[%d] = %+v, want %+v", i, res, results[0])
		}
	}

	again := d.Trigger(context.Background())
	if again != results[0] || calls.Load() != 1 {
		t.Errorf("later Trigger = %+v (calls %d), want memoized result", again, calls.Load())
	}
	if d.State() != StateCompleted {
		t.Errorf("State() = %s, want completed", d.State())
	}
	if d.FolderPath() != "/bundles/tmp_1" {
		t.Errorf("FolderPath() = %q", d.FolderPath())
	}
}

func TestDownloader_InspectBeforeTrigger(t *testing.T) {
	t.Parallel()

	d := newFakeDownloader(afero.NewMemMapFs(), func(context.Context, types.FilesystemPath) Result {
		t.Error("job must not run")
		return Result{}
	})

	if d.State() != StateNotStarted {
		t.Errorf("State() = %s, want not-started", d.State())
	}
	if _, ok := d.Result(); ok {
		t.Error("Result() reported settled before Trigger")
	}
	if d.FolderPath() != "" {
		t.Errorf("FolderPath() = %q, want empty", d.FolderPath())
	}
	if _, ok := d.UserError(); ok {
		t.Error("UserError() reported before Trigger")
	}
	select {
	case <-d.Done():
		t.Error("Done() closed before Trigger")
	default:
	}
}

func TestDownloader_TriggerIgnoresCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := newFakeDownloader(afero.NewMemMapFs(), func(ctx context.Context, folder types.FilesystemPath) Result {
		if ctx.Err() != nil {
			return internalFailure(ctx.Err())
		}
		return success(folder)
	})

	if res := d.Trigger(ctx); !res.OK() {
		t.Errorf("Trigger() with cancelled ctx = %+v, want success", res)
	}
}

func TestDownloader_PanicIsInternalFailure(t *testing.T) {
	t.Parallel()

	d := newFakeDownloader(afero.NewMemMapFs(), func(context.Context, types.FilesystemPath) Result {
		panic("boom")
	})

	f := assertInternal(t, d.Trigger(context.Background()))
	if f.Cause == nil {
		t.Error("panic failure has no cause")
	}
}

func TestDownloader_DisposeBeforeTrigger(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := newFakeDownloader(afero.NewMemMapFs(), func(_ context.Context, folder types.FilesystemPath) Result {
		calls.Add(1)
		return success(folder)
	})

	if err := d.Dispose(context.Background()); err != nil {
		t.Fatalf("Dispose() error: %v", err)
	}
	if !d.Disposed() {
		t.Error("Disposed() = false after Dispose")
	}

	f := assertInternal(t, d.Trigger(context.Background()))
	if !errors.Is(f, ErrDisposed) {
		t.Errorf("failure = %v, want ErrDisposed", f)
	}
	if calls.Load() != 0 {
		t.Errorf("job ran %d times after disposal", calls.Load())
	}
}

func TestDownloader_DisposeBeforeStartIsNotLoggedAsFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	d := newDownloader(JobText, "/bundles/tmp_1", func(_ context.Context, folder types.FilesystemPath) Result {
		return success(folder)
	}, afero.NewMemMapFs(), logger)

	if err := d.Dispose(context.Background()); err != nil {
		t.Fatalf("Dispose() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "disposed before start") {
		t.Errorf("log lacks disposal message:\n%s", out)
	}
	if strings.Contains(out, "job failed") || strings.Contains(out, "ERRO") {
		t.Errorf("disposal logged as a failure:\n%s", out)
	}
}

func TestDownloader_DisposeTwice(t *testing.T) {
	t.Parallel()

	fs := &countingFs{Fs: afero.NewMemMapFs()}
	d := newFakeDownloader(fs, func(_ context.Context, folder types.FilesystemPath) Result {
		if err := fs.MkdirAll(string(folder), 0o755); err != nil {
			return internalFailure(err)
		}
		return success(folder)
	})

	if res := d.Trigger(context.Background()); !res.OK() {
		t.Fatalf("Trigger() = %+v", res)
	}
	if err := d.Dispose(context.Background()); err != nil {
		t.Fatalf("first Dispose() error: %v", err)
	}
	if err := d.Dispose(context.Background()); err != nil {
		t.Fatalf("second Dispose() error: %v", err)
	}

	if got := fs.removes.Load(); got != 1 {
		t.Errorf("RemoveAll called %d times, want 1", got)
	}
	if exists, _ := afero.Exists(fs, "/bundles/tmp_1"); exists {
		t.Error("folder still exists after Dispose")
	}
}

func TestDownloader_DisposeMissingFolder(t *testing.T) {
	t.Parallel()

	fs := &countingFs{Fs: afero.NewMemMapFs()}
	d := newFakeDownloader(fs, func(context.Context, types.FilesystemPath) Result {
		return internalFailure(errors.New("nothing created"))
	})

	d.Trigger(context.Background())
	if err := d.Dispose(context.Background()); err != nil {
		t.Fatalf("Dispose() error: %v", err)
	}
	if got := fs.removes.Load(); got != 0 {
		t.Errorf("RemoveAll called %d times for a missing folder", got)
	}
}

func TestDownloader_DisposeReturnsRemovalError(t *testing.T) {
	t.Parallel()

	fs := &testutil.FaultyFs{Fs: afero.NewMemMapFs(), FailRemove: "tmp_1"}
	d := newFakeDownloader(fs, func(_ context.Context, folder types.FilesystemPath) Result {
		if err := fs.MkdirAll(string(folder), 0o755); err != nil {
			return internalFailure(err)
		}
		return success(folder)
	})

	d.Trigger(context.Background())
	if err := d.Dispose(context.Background()); !errors.Is(err, testutil.ErrInjected) {
		t.Errorf("Dispose() error = %v, want ErrInjected", err)
	}
}

func TestDownloader_DisposeAwaitsInFlightJob(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	started := make(chan struct{})
	release := make(chan struct{})
	d := newFakeDownloader(fs, func(_ context.Context, folder types.FilesystemPath) Result {
		_ = fs.MkdirAll(string(folder), 0o755)
		close(started)
		<-release
		return success(folder)
	})

	go d.Trigger(context.Background())
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Dispose(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Dispose() error = %v, want DeadlineExceeded", err)
	}

	close(release)
	<-d.Done()

	deadline := time.Now().Add(2 * time.Second)
	for {
		exists, _ := afero.Exists(fs, "/bundles/tmp_1")
		if !exists {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("folder not removed after the in-flight job settled")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  string
	}{
		{StateNotStarted, "not-started"},
		{StateRunning, "running"},
		{StateCompleted, "completed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_Validate(t *testing.T) {
	t.Parallel()

	for _, s := range []State{StateNotStarted, StateRunning, StateCompleted} {
		if err := s.Validate(); err != nil {
			t.Errorf("State(%s).Validate() error: %v", s, err)
		}
	}
	err := State(-1).Validate()
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("State(-1).Validate() = %v, want ErrInvalidState", err)
	}
	var stateErr *InvalidStateError
	if !errors.As(err, &stateErr) || stateErr.Value != -1 {
		t.Errorf("error = %v, want *InvalidStateError{-1}", err)
	}
}
