// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"fmt"

	"github.com/Code-Poets/latex-online/internal/process"
	"github.com/Code-Poets/latex-online/pkg/types"
)

// TarExtractCommand returns the extraction of archive into folder.
func (m *Manager) TarExtractCommand(archive, folder types.FilesystemPath) process.Command {
	return process.Command{
		Name: m.tools.Tar,
		Args: []string{"-xf", string(archive), "-C", string(folder)},
	}
}

func (m *Manager) tarballJob(archive types.FilesystemPath) job {
	return func(ctx context.Context, folder types.FilesystemPath) Result {
		if err := m.mkdir(folder); err != nil {
			return internalFailure(err)
		}

		cmd := m.TarExtractCommand(archive, folder)
		m.logger.Debug("extracting archive", "command", cmd.String())
		res, err := m.runner.Run(ctx, cmd)
		if err != nil {
			m.removeFolder(folder)
			return internalFailure(err)
		}
		if !res.Success() {
			m.removeFolder(folder)
			return failed(&Failure{
				Kind:  KindExtractFailed,
				Cause: fmt.Errorf("tar exited with status %d: %s", res.ExitCode, res.Output),
			})
		}
		return success(folder)
	}
}
