// SPDX-License-Identifier: MPL-2.0

package transform

import (
	"context"
	"fmt"

	"github.com/Code-Poets/latex-online/internal/process"
	"github.com/Code-Poets/latex-online/pkg/fspath"
	"github.com/Code-Poets/latex-online/pkg/types"
)

// DefaultBinary is the Inkscape executable looked up on PATH.
const DefaultBinary = "inkscape"

// Tool invokes the external vector-graphics tool.
type Tool struct {
	binary string
	runner process.Runner
}

// NewTool creates a Tool running binary through runner. An empty binary
// selects DefaultBinary.
func NewTool(binary string, runner process.Runner) *Tool {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Tool{binary: binary, runner: runner}
}

// Command builds the invocation for image inside dir:
//
//	<tool> --without-gui --file=<dir>/<image> <flags...>
//
// The command runs with dir as working directory so relative export targets
// stay inside the bundle.
func (t *Tool) Command(dir types.FilesystemPath, image types.FileName, opts []Option) process.Command {
	args := []string{"--without-gui", "--file=" + string(fspath.JoinName(dir, image))}
	args = append(args, Flags(opts)...)
	return process.Command{Name: t.binary, Args: args, Dir: dir}
}

// Apply runs the tool once for image with opts. A tool that cannot be
// started or exits nonzero is an error.
func (t *Tool) Apply(ctx context.Context, dir types.FilesystemPath, image types.FileName, opts []Option) error {
	res, err := t.runner.Run(ctx, t.Command(dir, image, opts))
	if err != nil {
		return fmt.Errorf("transforming %s: %w", image, err)
	}
	if !res.Success() {
		return &ToolError{
			Image:    string(image),
			ExitCode: int(res.ExitCode),
			TimedOut: res.TimedOut,
			Output:   string(res.Output),
		}
	}
	return nil
}
