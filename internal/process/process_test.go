// SPDX-License-Identifier: MPL-2.0

package process

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Code-Poets/latex-online/pkg/types"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("skipping: sh not available")
	}
}

func TestCommandString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{
			name: "plain words stay unquoted",
			cmd:  Command{Name: "tar", Args: []string{"-xf", "/in/a.tar", "-C", "/out/tmp_1"}},
			want: "tar -xf /in/a.tar -C /out/tmp_1",
		},
		{
			name: "spaces are quoted",
			cmd:  Command{Name: "git", Args: []string{"clone", "--depth", "1", "https://example.com/r.git", "/tmp/my dir"}},
			want: "git clone --depth 1 https://example.com/r.git '/tmp/my dir'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("Command.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunnerFunc(t *testing.T) {
	t.Parallel()

	var got Command
	r := RunnerFunc(func(_ context.Context, cmd Command) (Result, error) {
		got = cmd
		return Result{ExitCode: 2}, nil
	})

	res, err := r.Run(context.Background(), Command{Name: "inkscape"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got.Name != "inkscape" {
		t.Errorf("command name = %q, want inkscape", got.Name)
	}
	if res.Success() {
		t.Error("Success() = true for exit code 2")
	}
}

func TestExecRunner_Success(t *testing.T) {
	t.Parallel()
	requireSh(t)

	dir := t.TempDir()
	res, err := NewExecRunner().Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "pwd; echo done >&2"},
		Dir:  types.FilesystemPath(dir),
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !res.Success() {
		t.Fatalf("Success() = false, exit code %d", res.ExitCode)
	}
	out := string(res.Output)
	if !strings.Contains(out, filepath.Base(dir)) {
		t.Errorf("output %q does not show working directory %s", out, dir)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("output %q does not contain stderr line", out)
	}
}

func TestExecRunner_NonzeroExit(t *testing.T) {
	t.Parallel()
	requireSh(t)

	res, err := NewExecRunner().Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 3"}})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Success() || res.TimedOut {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestExecRunner_Timeout(t *testing.T) {
	t.Parallel()
	requireSh(t)

	start := time.Now()
	res, err := NewExecRunner().Run(context.Background(), Command{
		Name:    "sh",
		Args:    []string{"-c", "sleep 5"},
		Timeout: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !res.TimedOut {
		t.Fatal("TimedOut = false, want true")
	}
	if res.ExitCode != ExitCodeTimedOut {
		t.Errorf("ExitCode = %d, want %d", res.ExitCode, ExitCodeTimedOut)
	}
	if elapsed := time.Since(start); elapsed > 4*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestExecRunner_StartFailure(t *testing.T) {
	t.Parallel()

	_, err := NewExecRunner().Run(context.Background(), Command{Name: "latexprep-no-such-binary"})
	if err == nil {
		t.Fatal("Run() expected error for missing binary")
	}
}

func TestExecRunner_EmptyName(t *testing.T) {
	t.Parallel()

	_, err := NewExecRunner().Run(context.Background(), Command{Name: "  "})
	if !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("Run() error = %v, want ErrEmptyCommand", err)
	}
}

func TestTailBuffer(t *testing.T) {
	t.Parallel()

	b := newTailBuffer(5)
	for _, s := range []string{"ab", "cd", "efg"} {
		if _, err := b.Write([]byte(s)); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
	}
	if got := string(b.Bytes()); got != "cdefg" {
		t.Errorf("Bytes() = %q, want %q", got, "cdefg")
	}

	if _, err := b.Write([]byte("0123456789")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if got := string(b.Bytes()); got != "56789" {
		t.Errorf("Bytes() = %q, want %q", got, "56789")
	}
}

func TestExecRunner_WithMaxOutputKeepsTail(t *testing.T) {
	t.Parallel()
	requireSh(t)

	res, err := NewExecRunner(WithMaxOutput(4)).Run(context.Background(),
		Command{Name: "sh", Args: []string{"-c", "printf abcdefgh"}})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if string(res.Output) != "efgh" {
		t.Errorf("Output = %q, want the last 4 bytes", res.Output)
	}
}
