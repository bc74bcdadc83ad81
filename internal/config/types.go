// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Code-Poets/latex-online/pkg/types"
)

const (
	// LogLevelDebug logs job commands and lifecycle events.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs user-facing failures and root cleanup.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs cleanup failures.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs internal failures only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidToolName is returned when a ToolName is empty or whitespace-only.
	ErrInvalidToolName = errors.New("invalid tool name")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level that is logged.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ToolName is a binary name resolved through PATH, or an absolute path.
	ToolName string

	// InvalidToolNameError is returned when a ToolName is blank.
	InvalidToolNameError struct {
		Tool  string
		Value ToolName
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// RootDir is where bundle folders are allocated. It is emptied on start.
		RootDir types.FilesystemPath `json:"root_dir" mapstructure:"root_dir" toml:"root_dir"`
		// Tools names the external binaries.
		Tools ToolsConfig `json:"tools" mapstructure:"tools" toml:"tools"`
		// Log configures logging.
		Log LogConfig `json:"log" mapstructure:"log" toml:"log"`
		// UI configures command-line output.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// ToolsConfig names the external binaries run by the jobs.
	ToolsConfig struct {
		Git      ToolName `json:"git" mapstructure:"git" toml:"git"`
		Tar      ToolName `json:"tar" mapstructure:"tar" toml:"tar"`
		Inkscape ToolName `json:"inkscape" mapstructure:"inkscape" toml:"inkscape"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level" toml:"level"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose shows internal failure causes and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels,
// and a list of validation errors if it is not.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the ToolName.
func (n ToolName) String() string { return string(n) }

// Error implements the error interface for InvalidToolNameError.
func (e *InvalidToolNameError) Error() string {
	return fmt.Sprintf("invalid %s tool %q: must be non-empty", e.Tool, e.Value)
}

// Unwrap returns ErrInvalidToolName for errors.Is() compatibility.
func (e *InvalidToolNameError) Unwrap() error { return ErrInvalidToolName }

// IsValid returns whether every tool name is non-blank.
func (c ToolsConfig) IsValid() (bool, []error) {
	var errs []error
	for _, tool := range []struct {
		name  string
		value ToolName
	}{
		{"git", c.Git},
		{"tar", c.Tar},
		{"inkscape", c.Inkscape},
	} {
		if strings.TrimSpace(string(tool.value)) == "" {
			errs = append(errs, &InvalidToolNameError{Tool: tool.name, Value: tool.value})
		}
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if err := c.RootDir.Validate(); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := c.Tools.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RootDir: DefaultRootDir(),
		Tools: ToolsConfig{
			Git:      "git",
			Tar:      "tar",
			Inkscape: "inkscape",
		},
		Log: LogConfig{Level: LogLevelInfo},
		UI:  UIConfig{Verbose: false},
	}
}
