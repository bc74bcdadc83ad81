// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		RootSetupFailedId,
		ToolNotFoundId,
		PayloadInvalidId,
		ConfigLoadFailedId,
		InputNotFoundId,
		BundleFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if RootSetupFailedId != 1 {
		t.Errorf("RootSetupFailedId = %d, want 1", RootSetupFailedId)
	}
	if len(issues) != len(ids) {
		t.Errorf("catalog has %d issues, want %d", len(issues), len(ids))
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	if Get(Id(999)) != nil {
		t.Error("Get(999) should return nil")
	}
}

func TestValues_Ordered(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   Id
		want string
	}{
		{RootSetupFailedId, "bundle root"},
		{ToolNotFoundId, "tools:"},
		{PayloadInvalidId, "imageDataUrl"},
		{ConfigLoadFailedId, "config.cue"},
		{InputNotFoundId, "does not exist"},
		{BundleFailedId, "--verbose"},
	}
	for _, tt := range tests {
		msg := Get(tt.id).MarkdownMsg()
		if !strings.Contains(string(msg), tt.want) {
			t.Errorf("issue %d markdown does not mention %q", tt.id, tt.want)
		}
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	t.Parallel()

	for _, iss := range Values() {
		out, err := iss.Render("notty")
		if err != nil {
			t.Errorf("issue %d Render() error: %v", iss.Id(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("issue %d rendered empty", iss.Id())
		}
	}
}
