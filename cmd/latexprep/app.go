// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Code-Poets/latex-online/internal/config"
	"github.com/Code-Poets/latex-online/internal/download"
	"github.com/Code-Poets/latex-online/internal/issue"
	"github.com/Code-Poets/latex-online/internal/logging"
	"github.com/Code-Poets/latex-online/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives an App and reaches the core through it.
	App struct {
		Config         config.Provider
		managerOptions []download.Option
		stdout         io.Writer
		stderr         io.Writer
		flags          globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// ManagerOptions are applied after the options derived from
		// configuration, so tests can swap the filesystem or runner.
		ManagerOptions []download.Option
		Stdout         io.Writer
		Stderr         io.Writer
	}

	globalFlags struct {
		configPath string
		rootDir    string
		verbose    bool
		json       bool
	}

	// session is the per-invocation state derived from configuration and flags.
	session struct {
		cfg     *config.Config
		logger  *log.Logger
		verbose bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:         deps.Config,
		managerOptions: deps.ManagerOptions,
		stdout:         deps.Stdout,
		stderr:         deps.Stderr,
	}
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.flags.configPath}
}

// begin loads configuration, applies flag overrides and builds the logger.
func (a *App) begin(ctx context.Context) (*session, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}

	if a.flags.rootDir != "" {
		cfg.RootDir = types.FilesystemPath(a.flags.rootDir)
	}
	verbose := a.flags.verbose || cfg.UI.Verbose

	level := string(cfg.Log.Level)
	if verbose {
		level = string(config.LogLevelDebug)
	}
	logger, err := logging.New(a.stderr, logging.Options{
		Level:           level,
		Prefix:          config.AppName,
		ReportTimestamp: true,
	})
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, verbose: verbose}, nil
}

// newManager creates the bundle manager for s. With dryRun set the manager
// works on an in-memory filesystem so the real root is left alone.
func (a *App) newManager(s *session, dryRun bool) (*download.Manager, error) {
	opts := []download.Option{
		download.WithLogger(s.logger),
		download.WithTools(download.Tools{
			Git:      s.cfg.Tools.Git.String(),
			Tar:      s.cfg.Tools.Tar.String(),
			Inkscape: s.cfg.Tools.Inkscape.String(),
		}),
	}
	opts = append(opts, a.managerOptions...)
	if dryRun {
		opts = append(opts, download.WithFs(afero.NewMemMapFs()))
	}

	m, err := download.NewManager(s.cfg.RootDir, opts...)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("prepare bundle root").
			WithResource(s.cfg.RootDir.String()).
			WithSuggestion("Check that the directory is writable").
			WithSuggestion("Choose another location with --root or LATEXPREP_ROOT_DIR").
			WithIssue(issue.RootSetupFailedId).
			Wrap(err).
			BuildError()
	}
	return m, nil
}
