// SPDX-License-Identifier: MPL-2.0

package testutil

import "testing"

// SetConfigHome points XDG_CONFIG_HOME at dir and returns a cleanup function
// restoring the original value.
//
//	t.Cleanup(testutil.SetConfigHome(t, t.TempDir()))
//
// Tests using it must not run in parallel with tests reading the environment.
func SetConfigHome(t testing.TB, dir string) func() {
	t.Helper()
	return MustSetenv(t, "XDG_CONFIG_HOME", dir)
}
