package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	old := Out
	Out = &buf
	t.Cleanup(func() { Out = old })

	Info("Generating...")
	Warning("icon 64 failed")
	Error("cannot create directory")
	Success("Generated Successfully!")
	Header("ICON SET")

	out := buf.String()
	for _, want := range []string{
		"[INFO] " + Reset + "Generating...",
		"[WARNING] " + Reset + "icon 64 failed",
		"[ERROR] " + Reset + "cannot create directory",
		"[SUCCESS] " + Reset + "Generated Successfully!",
		"=== ICON SET ===",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBusyIdle(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"success", "[SUCCESS] "},
		{"partial_failure", "[WARNING] "},
		{"failure", "[ERROR] "},
		{"unknown", "[ERROR] "},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			var buf bytes.Buffer
			old := Out
			Out = &buf
			t.Cleanup(func() { Out = old })

			Busy("Generating...")
			Idle(tt.status, "done")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != 2 {
				t.Fatalf("Expected 2 lines, got %q", buf.String())
			}
			if !strings.Contains(lines[0], "[BUSY] "+Reset+"Generating...") {
				t.Errorf("busy line = %q", lines[0])
			}
			if !strings.Contains(lines[1], tt.want+Reset+"done") {
				t.Errorf("idle line = %q, want level %q", lines[1], tt.want)
			}
		})
	}
}

func TestPrintLogo(t *testing.T) {
	var buf bytes.Buffer
	old := Out
	Out = &buf
	t.Cleanup(func() { Out = old })

	PrintLogo()
	if !strings.Contains(buf.String(), "App icon set generator") {
		t.Errorf("logo missing tagline:\n%s", buf.String())
	}
}
