// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/Code-Poets/latex-online/internal/process"
	"github.com/Code-Poets/latex-online/pkg/types"
)

// FakeRunner records commands instead of running them. Respond, when set,
// decides each outcome; otherwise every command succeeds.
type FakeRunner struct {
	Respond func(cmd process.Command) (process.Result, error)

	mu    sync.Mutex
	calls []process.Command
}

// Run implements process.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.Respond == nil {
		return process.Result{}, nil
	}
	return f.Respond(cmd)
}

// Calls returns the recorded commands in order.
func (f *FakeRunner) Calls() []process.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// ExitWith returns a Respond function failing every command with code.
func ExitWith(code int, output string) func(process.Command) (process.Result, error) {
	return func(process.Command) (process.Result, error) {
		return process.Result{ExitCode: types.ExitCode(code), Output: []byte(output)}, nil
	}
}
