// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/Code-Poets/latex-online/internal/process"
	"github.com/Code-Poets/latex-online/pkg/types"
)

type (
	// CloneError is the cause of a KindCloneFailed failure.
	CloneError struct {
		Result process.Result
	}
)

// Error implements the error interface for CloneError.
func (e *CloneError) Error() string {
	if e.Result.TimedOut {
		return fmt.Sprintf("git clone timed out after %s", GitCloneTimeout)
	}
	return fmt.Sprintf("git clone exited with status %d: %s", e.Result.ExitCode, e.Result.Output)
}

// GitCloneCommand returns the shallow clone of url into folder.
func (m *Manager) GitCloneCommand(url string, folder types.FilesystemPath) process.Command {
	return process.Command{
		Name:    m.tools.Git,
		Args:    []string{"clone", "--depth", "1", url, string(folder)},
		Timeout: GitCloneTimeout,
	}
}

// gitJob leaves the folder in place when the clone fails.
func (m *Manager) gitJob(url string) job {
	return func(ctx context.Context, folder types.FilesystemPath) Result {
		exists, err := afero.Exists(m.fs, string(folder))
		if err != nil {
			return internalFailure(err)
		}
		if exists {
			return internalFailure(fmt.Errorf("%w: %s", ErrFolderExists, folder))
		}
		if err := m.mkdir(folder); err != nil {
			return internalFailure(err)
		}

		cmd := m.GitCloneCommand(url, folder)
		m.logger.Debug("cloning repository", "command", cmd.String())
		res, err := m.runner.Run(ctx, cmd)
		if err != nil {
			return internalFailure(err)
		}
		if !res.Success() {
			return failed(&Failure{Kind: KindCloneFailed, URL: url, Cause: &CloneError{Result: res}})
		}
		return success(folder)
	}
}
