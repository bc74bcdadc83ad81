// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is read from the file given on the command line, otherwise
// from config.cue in the user config directory ($XDG_CONFIG_HOME/latexprep on
// Linux), otherwise from ./config.cue. Every key can be overridden by an
// environment variable prefixed with LATEXPREP_ (LATEXPREP_ROOT_DIR,
// LATEXPREP_TOOLS_INKSCAPE, LATEXPREP_LOG_LEVEL, ...).
//
// Files are validated against the embedded config_schema.cue before being merged.
package config
