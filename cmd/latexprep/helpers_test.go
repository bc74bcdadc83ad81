// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Code-Poets/latex-online/internal/config"
	"github.com/Code-Poets/latex-online/internal/download"
	"github.com/Code-Poets/latex-online/pkg/types"
)

// stubProvider serves a fixed configuration.
type stubProvider struct {
	cfg  *config.Config
	path string
	err  error
}

func (p *stubProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if p.err != nil {
		return nil, p.err
	}
	cfg := *p.cfg
	return &cfg, nil
}

func (p *stubProvider) Path(config.LoadOptions) (string, error) {
	return p.path, p.err
}

// testConfig returns defaults rooted in a fresh temp directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.RootDir = types.FilesystemPath(filepath.Join(t.TempDir(), "bundles"))
	return cfg
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, cfg *config.Config, managerOpts []download.Option, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config:         &stubProvider{cfg: cfg},
		ManagerOptions: managerOpts,
		Stdout:         &stdout,
		Stderr:         &stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func requireExitCode(t *testing.T, err error, want types.ExitCode) *ExitError {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.Code != want {
		t.Fatalf("exit code = %d, want %d (%v)", exitErr.Code, want, err)
	}
	return exitErr
}
