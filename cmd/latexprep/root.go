// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Code-Poets/latex-online/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the latexprep command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "latexprep",
		Short: "Prepare disposable input bundles for LaTeX builds",
		Long: TitleStyle.Render("latexprep") + SubtitleStyle.Render(" - disposable input bundles for LaTeX builds") + `

latexprep materialises the inputs of a document build into a fresh folder
under the bundle root: inline text, a shallow git clone, a downloaded file,
an extracted tarball, or a JSON payload of text plus embedded images.

` + SubtitleStyle.Render("Examples:") + `
  latexprep prepare text main.tex --text '\documentclass{article}...'
  latexprep prepare git https://github.com/user/thesis.git
  latexprep prepare url https://example.com/paper.tex main.tex
  latexprep prepare json payload.json main.tex --dispose
  latexprep config show --format toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/latexprep/config.cue)")
	flags.StringVar(&app.flags.rootDir, "root", "", "bundle root directory (overrides root_dir)")
	flags.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output and debug logging")
	flags.BoolVar(&app.flags.json, "json", false, "print results as JSON")

	rootCmd.AddCommand(newPrepareCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the code carried by an ExitError.
// It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(ExitUserFailure))
	}
}

// formatErrorForDisplay formats an error for user display.
// An ActionableError is rendered with its suggestions.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// renderIssue writes the catalog page for err's issue, if it names one.
func renderIssue(w io.Writer, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue == 0 {
		return
	}
	renderIssuePage(w, ae.Issue)
}

func renderIssuePage(w io.Writer, id issue.Id) {
	page := issue.Get(id)
	if page == nil {
		return
	}
	rendered, renderErr := page.Render("dark")
	if renderErr != nil {
		return
	}
	_, _ = fmt.Fprint(w, rendered)
}
