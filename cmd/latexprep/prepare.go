// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/Code-Poets/latex-online/internal/download"
	"github.com/Code-Poets/latex-online/internal/issue"
	"github.com/Code-Poets/latex-online/internal/process"
	"github.com/Code-Poets/latex-online/internal/transform"
	"github.com/Code-Poets/latex-online/pkg/fspath"
	"github.com/Code-Poets/latex-online/pkg/types"
)

type (
	prepareFlags struct {
		dispose bool
		dryRun  bool
	}

	// bundleRequest describes one prepare invocation.
	bundleRequest struct {
		// create builds the Downloader on m.
		create func(m *download.Manager) *download.Downloader
		// describe returns the command the job would run in folder.
		// It is nil for jobs that run no external tool.
		describe func(m *download.Manager, folder types.FilesystemPath) process.Command
	}

	// bundleError reports a failed bundle. User failures print their user
	// message; internal failures only show the cause in verbose mode.
	bundleError struct {
		failure *download.Failure
		verbose bool
	}
)

func (e *bundleError) Error() string {
	if e.failure.Kind.IsUser() {
		return e.failure.UserMessage()
	}
	if e.verbose {
		return "internal error while preparing the bundle: " + e.failure.Error()
	}
	return "internal error while preparing the bundle (rerun with --verbose for details)"
}

func (e *bundleError) Unwrap() error { return e.failure }

func newPrepareCommand(app *App) *cobra.Command {
	pf := &prepareFlags{}

	prepareCmd := &cobra.Command{
		Use:   "prepare",
		Short: "Materialise a bundle into a fresh folder",
		Long: `Materialise a bundle into a fresh tmp_<N> folder under the bundle root.

The bundle root is emptied before the first folder is allocated, so every
invocation starts from a clean root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	prepareCmd.PersistentFlags().BoolVar(&pf.dispose, "dispose", false, "remove the bundle folder after printing the result")

	prepareCmd.AddCommand(
		newPrepareTextCommand(app, pf),
		newPrepareGitCommand(app, pf),
		newPrepareURLCommand(app, pf),
		newPrepareTarballCommand(app, pf),
		newPrepareJSONCommand(app, pf),
	)
	return prepareCmd
}

func newPrepareTextCommand(app *App, pf *prepareFlags) *cobra.Command {
	var text, from string

	cmd := &cobra.Command{
		Use:   "text <file-name>",
		Short: "Write text into a single file",
		Args:  cobra.MatchAll(cobra.ExactArgs(1), fileNameArg(0)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from != "" {
				data, err := readInput(from, "text")
				if err != nil {
					return app.report(app.flags.verbose, err)
				}
				text = string(data)
			}
			name := types.FileName(args[0])
			return app.runPrepare(cmd.Context(), pf, bundleRequest{
				create: func(m *download.Manager) *download.Downloader {
					return m.NewTextDownloader(text, name)
				},
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to write")
	cmd.Flags().StringVar(&from, "from", "", "read the text from a file")
	cmd.MarkFlagsMutuallyExclusive("text", "from")
	cmd.MarkFlagsOneRequired("text", "from")
	return cmd
}

func newPrepareGitCommand(app *App, pf *prepareFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git <url>",
		Short: "Shallow-clone a git repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			return app.runPrepare(cmd.Context(), pf, bundleRequest{
				create: func(m *download.Manager) *download.Downloader {
					return m.NewGitDownloader(url)
				},
				describe: func(m *download.Manager, folder types.FilesystemPath) process.Command {
					return m.GitCloneCommand(url, folder)
				},
			})
		},
	}
	cmd.Flags().BoolVar(&pf.dryRun, "dry-run", false, "print the clone command without running it")
	return cmd
}

func newPrepareURLCommand(app *App, pf *prepareFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "url <url> <file-name>",
		Short: "Download a URL into a single file",
		Args:  cobra.MatchAll(cobra.ExactArgs(2), fileNameArg(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, name := args[0], types.FileName(args[1])
			return app.runPrepare(cmd.Context(), pf, bundleRequest{
				create: func(m *download.Manager) *download.Downloader {
					return m.NewURLDownloader(url, name)
				},
			})
		},
	}
}

func newPrepareTarballCommand(app *App, pf *prepareFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tarball <archive>",
		Short: "Extract a local tar archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := fspath.Abs(types.FilesystemPath(args[0]))
			if err != nil {
				return err
			}
			if info, statErr := os.Stat(archive.String()); statErr != nil || info.IsDir() {
				return app.report(app.flags.verbose, inputNotFound(archive.String(), "archive", statErr))
			}
			return app.runPrepare(cmd.Context(), pf, bundleRequest{
				create: func(m *download.Manager) *download.Downloader {
					return m.NewTarballExtractor(archive)
				},
				describe: func(m *download.Manager, folder types.FilesystemPath) process.Command {
					return m.TarExtractCommand(archive, folder)
				},
			})
		},
	}
	cmd.Flags().BoolVar(&pf.dryRun, "dry-run", false, "print the extract command without running it")
	return cmd
}

func newPrepareJSONCommand(app *App, pf *prepareFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "json <payload.json> <file-name>",
		Short: "Assemble text and embedded images from a JSON payload",
		Long: `Assemble a bundle from a JSON payload of the form

  {"text": "...", "images": [{"name": "fig.png", "imageDataUrl": "data:...", "transform": {...}}]}

The text is written to <file-name>; each image is decoded next to it and,
when a transform is given, post-processed with Inkscape.`,
		Args: cobra.MatchAll(cobra.ExactArgs(2), fileNameArg(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], "payload")
			if err != nil {
				return app.report(app.flags.verbose, err)
			}
			payload, err := download.DecodePayload(data, args[0])
			if err != nil {
				return app.report(app.flags.verbose, issue.NewErrorContext().
					WithOperation("decode payload").
					WithResource(args[0]).
					WithSuggestion("Every image needs a plain file name and an imageDataUrl").
					WithSuggestion("Transform options are "+transform.JoinNames(", ")).
					WithIssue(issue.PayloadInvalidId).
					Wrap(err).
					BuildError())
			}
			name := types.FileName(args[1])
			return app.runPrepare(cmd.Context(), pf, bundleRequest{
				create: func(m *download.Manager) *download.Downloader {
					return m.NewJSONDownloader(payload, name)
				},
			})
		},
	}
}

// fileNameArg validates positional argument i as a bare file name.
func fileNameArg(i int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if i >= len(args) {
			return nil
		}
		return types.FileName(args[i]).Validate()
	}
}

func readInput(path, what string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, inputNotFound(path, what, err)
	}
	return data, nil
}

func inputNotFound(path, what string, cause error) error {
	if cause == nil {
		cause = fmt.Errorf("%s is a directory", path)
	}
	return issue.NewErrorContext().
		WithOperation("read " + what).
		WithResource(path).
		WithSuggestion("Check that the path exists and is readable").
		WithIssue(issue.InputNotFoundId).
		Wrap(cause).
		BuildError()
}

// runPrepare creates, triggers and reports one bundle.
func (a *App) runPrepare(ctx context.Context, pf *prepareFlags, req bundleRequest) error {
	s, err := a.begin(ctx)
	if err != nil {
		return a.report(a.flags.verbose, err)
	}

	m, err := a.newManager(s, pf.dryRun && req.describe != nil)
	if err != nil {
		return a.report(s.verbose, err)
	}

	if pf.dryRun && req.describe != nil {
		_, err := fmt.Fprintln(a.stdout, req.describe(m, m.NextName()).String())
		return err
	}

	d := req.create(m)
	res := d.Trigger(ctx)
	if err := a.printResult(res); err != nil {
		return err
	}

	var disposeErr error
	if pf.dispose {
		disposeErr = d.Dispose(ctx)
	}

	if res.Failure != nil {
		return a.failureError(s, res.Failure)
	}
	if disposeErr != nil {
		return fmt.Errorf("failed to dispose bundle %s: %w", d.Folder(), disposeErr)
	}
	return nil
}

func (a *App) printResult(res download.Result) error {
	if a.flags.json {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Output())
	}
	if res.OK() {
		_, err := fmt.Fprintf(a.stdout, "%s %s\n", SuccessStyle.Render("✓"), res.FolderPath)
		return err
	}
	return nil
}

func (a *App) failureError(s *session, f *download.Failure) error {
	if f.Kind.IsUser() {
		return &ExitError{Code: ExitUserFailure, Err: &bundleError{failure: f, verbose: s.verbose}}
	}
	if s.verbose {
		id := issue.BundleFailedId
		if errors.Is(f, exec.ErrNotFound) {
			id = issue.ToolNotFoundId
		}
		renderIssuePage(a.stderr, id)
	}
	return &ExitError{Code: ExitInternalFailure, Err: &bundleError{failure: f, verbose: s.verbose}}
}

// report writes the suggestions attached to err and, in verbose mode, its
// issue page. The error is returned for fang to print.
func (a *App) report(verbose bool, err error) error {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.HasSuggestions() {
		_, _ = fmt.Fprintln(a.stderr, WarningStyle.Render(formatErrorForDisplay(err, verbose)))
	}
	if verbose {
		renderIssue(a.stderr, err)
	}
	return err
}
