// SPDX-License-Identifier: MPL-2.0

// Package process is the subprocess primitive used by the acquisition jobs.
//
// A Command describes one invocation (binary, arguments, working directory and
// an optional hard timeout). A Runner executes it and reports the exit status
// together with a bounded tail of the combined output, which callers log on
// failure. Runners never interpret exit codes; deciding what a nonzero status
// means is left to the job that issued the command.
package process
