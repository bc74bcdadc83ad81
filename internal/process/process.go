// SPDX-License-Identifier: MPL-2.0

package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"mvdan.cc/sh/v3/syntax"

	"github.com/Code-Poets/latex-online/pkg/types"
)

const (
	// DefaultMaxOutput is how many trailing bytes of combined output are kept.
	DefaultMaxOutput = 16 << 10

	// ExitCodeTimedOut is reported when a command is killed by its timeout,
	// matching the status used by timeout(1).
	ExitCodeTimedOut types.ExitCode = 124

	waitDelay = time.Second
)

// ErrEmptyCommand is returned when a Command has no binary name.
var ErrEmptyCommand = errors.New("empty command name")

type (
	// Command is a single subprocess invocation.
	Command struct {
		// Name is the binary to run, resolved through PATH when not absolute.
		Name string
		// Args are passed verbatim, without shell interpretation.
		Args []string
		// Dir is the working directory. Empty means the current directory.
		Dir types.FilesystemPath
		// Timeout kills the process once exceeded. Zero means no timeout.
		Timeout time.Duration
	}

	// Result is the outcome of a command that was started.
	Result struct {
		ExitCode types.ExitCode
		// Output holds the tail of combined stdout and stderr.
		Output []byte
		// TimedOut is set when the process was killed by Command.Timeout.
		TimedOut bool
	}

	// Runner executes commands. Run returns an error only when the command
	// could not be started; a process that ran and exited nonzero is reported
	// through Result.
	Runner interface {
		Run(ctx context.Context, cmd Command) (Result, error)
	}

	// RunnerFunc adapts a function to the Runner interface.
	RunnerFunc func(ctx context.Context, cmd Command) (Result, error)

	// ExecRunner runs commands with os/exec.
	ExecRunner struct {
		maxOutput int
	}

	// ExecRunnerOption configures an ExecRunner.
	ExecRunnerOption func(*ExecRunner)
)

// Run calls f(ctx, cmd).
func (f RunnerFunc) Run(ctx context.Context, cmd Command) (Result, error) {
	return f(ctx, cmd)
}

// Success reports whether the command exited zero within its timeout.
func (r Result) Success() bool {
	return !r.TimedOut && r.ExitCode.IsSuccess()
}

// String renders the command as a shell-quoted line, for logs and dry runs.
// The working directory is not included.
func (c Command) String() string {
	words := make([]string, 0, 1+len(c.Args))
	words = append(words, c.Name)
	words = append(words, c.Args...)

	quoted := make([]string, len(words))
	for i, w := range words {
		q, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			// Quote only rejects strings that bash cannot represent (e.g. NUL bytes).
			q = fmt.Sprintf("%q", w)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

// WithMaxOutput bounds how many trailing bytes of output are retained.
func WithMaxOutput(n int) ExecRunnerOption {
	return func(r *ExecRunner) {
		r.maxOutput = n
	}
}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner(opts ...ExecRunnerOption) *ExecRunner {
	r := &ExecRunner{maxOutput: DefaultMaxOutput}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts cmd, waits for it to finish and reports its exit status.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return Result{}, ErrEmptyCommand
	}

	runCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	if !cmd.Dir.IsZero() {
		c.Dir = string(cmd.Dir)
	}

	out := newTailBuffer(r.maxOutput)
	c.Stdout = out
	c.Stderr = out
	// Grandchildren holding the output pipe must not keep Wait blocked
	// after the timeout kills the direct child.
	c.WaitDelay = waitDelay

	if err := c.Start(); err != nil {
		return Result{}, fmt.Errorf("starting %s: %w", cmd.Name, err)
	}

	err := c.Wait()
	result := Result{Output: out.Bytes()}

	if cmd.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = ExitCodeTimedOut
		return result, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return result, fmt.Errorf("waiting for %s: %w", cmd.Name, err)
		}
		code := types.ExitCode(exitErr.ExitCode())
		if code.Validate() != nil {
			// Killed by a signal; ExitCode() reports -1.
			code = 1
		}
		result.ExitCode = code
	}

	return result, nil
}
