// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for latexprep.
//
// The command tree drives internal/download: each `prepare` subcommand
// creates one Downloader, triggers it and prints the resulting Output.
package cmd
