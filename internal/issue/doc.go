// SPDX-License-Identifier: MPL-2.0

// Package issue holds user-facing error guidance: ActionableError for errors
// that carry an operation, a resource and suggestions, and a catalog of
// markdown help pages rendered in the terminal with glamour.
package issue
