// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Code-Poets/latex-online/pkg/fspath"
	"github.com/Code-Poets/latex-online/pkg/types"
)

// statusOK reports whether code is in the accepted [200, 400) band.
func statusOK(code int) bool {
	return code >= http.StatusOK && code < http.StatusBadRequest
}

func (m *Manager) urlJob(url string, fileName types.FileName) job {
	return func(ctx context.Context, folder types.FilesystemPath) Result {
		if err := fileName.Validate(); err != nil {
			return internalFailure(err)
		}
		if err := m.mkdir(folder); err != nil {
			return internalFailure(err)
		}
		res := m.fetch(ctx, url, fspath.JoinName(folder, fileName))
		if res != nil {
			m.removeFolder(folder)
			return failed(res)
		}
		return success(folder)
	}
}

func (m *Manager) fetch(ctx context.Context, url string, dest types.FilesystemPath) *Failure {
	f, err := m.fs.Create(string(dest))
	if err != nil {
		return &Failure{Kind: KindInternal, Cause: fmt.Errorf("creating %s: %w", dest, err)}
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Failure{Kind: KindFetchError, URL: url, Cause: err}
	}

	m.logger.Debug("fetching", "url", url)
	resp, err := m.client.Do(req)
	if err != nil {
		return &Failure{Kind: KindFetchError, URL: url, Cause: err}
	}
	defer resp.Body.Close()

	if !statusOK(resp.StatusCode) {
		return &Failure{Kind: KindBadStatus, URL: url, StatusCode: resp.StatusCode}
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		return &Failure{Kind: KindFetchError, URL: url, Cause: err}
	}
	if err := f.Close(); err != nil {
		return &Failure{Kind: KindFetchError, URL: url, Cause: err}
	}
	return nil
}
