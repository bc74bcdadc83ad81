// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides the Must* helpers it offers a scripted process.Runner (FakeRunner)
// and an afero filesystem that fails selected operations (FaultyFs).
package testutil
