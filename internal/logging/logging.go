// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured loggers used by latexprep.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when Options.Level is empty.
const DefaultLevel = "info"

// Options configures a logger.
type Options struct {
	// Level is one of debug, info, warn or error.
	Level string
	// Prefix is prepended to every line.
	Prefix string
	// ReportTimestamp adds a time.Kitchen timestamp to every line.
	ReportTimestamp bool
}

// New returns a logger writing to w. An unknown level is an error.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	levelName := opts.Level
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.ReportTimestamp,
		TimeFormat:      time.Kitchen,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
