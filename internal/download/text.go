// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"

	"github.com/Code-Poets/latex-online/pkg/types"
)

func (m *Manager) textJob(text string, fileName types.FileName) job {
	return func(_ context.Context, folder types.FilesystemPath) Result {
		if err := fileName.Validate(); err != nil {
			return internalFailure(err)
		}
		if err := m.mkdir(folder); err != nil {
			return internalFailure(err)
		}
		if err := m.writeFile(folder, fileName, []byte(text)); err != nil {
			m.removeFolder(folder)
			return internalFailure(err)
		}
		return success(folder)
	}
}
