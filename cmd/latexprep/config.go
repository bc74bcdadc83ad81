// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Code-Poets/latex-online/internal/config"
)

const (
	formatCUE  = "cue"
	formatTOML = "toml"
)

// newConfigCommand creates the `latexprep config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect latexprep configuration",
		Long: `Inspect latexprep configuration.

Configuration is read from the --config file, or else the first of:
  - Linux: ~/.config/latexprep/config.cue
  - macOS: ~/Library/Application Support/latexprep/config.cue
  - Windows: %APPDATA%\latexprep\config.cue
  - ./config.cue

LATEXPREP_* environment variables (e.g. LATEXPREP_TOOLS_INKSCAPE)
override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.report(app.flags.verbose, err)
			}
			return showConfig(app, cfg, format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", formatCUE, "output format (cue or toml)")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show which configuration file is in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	return cfgCmd
}

func showConfig(app *App, cfg *config.Config, format string) error {
	var out string
	switch format {
	case formatCUE:
		out = config.GenerateCUE(cfg)
	case formatTOML:
		rendered, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		out = rendered
	default:
		return fmt.Errorf("unknown format %q (valid: %s, %s)", format, formatCUE, formatTOML)
	}
	_, err := fmt.Fprint(app.stdout, out)
	return err
}

func showConfigPath(app *App) error {
	path, err := app.Config.Path(app.loadOptions())
	if err != nil {
		return app.report(app.flags.verbose, err)
	}

	if cfgDir, dirErr := config.ConfigDir(); dirErr == nil {
		_, _ = fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config directory"), cfgDir)
	}
	if path == "" {
		_, err = fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		return err
	}
	_, err = fmt.Fprintf(app.stdout, "%s: %s\n", CmdStyle.Render("Config file"), path)
	return err
}
