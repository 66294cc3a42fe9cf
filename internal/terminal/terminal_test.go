package terminal

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestSeparatorFillsWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	if p.Width() != defaultWidth {
		t.Fatalf("Width = %d, want %d for a non-terminal writer", p.Width(), defaultWidth)
	}

	p.Separator("Vagrant")

	line := strings.Trim(buf.String(), "\n")
	if !strings.Contains(line, " Vagrant ") {
		t.Errorf("separator %q missing title", line)
	}
	if w := lipgloss.Width(line); w != defaultWidth {
		t.Errorf("separator width = %d, want %d", w, defaultWidth)
	}
}

func TestAnnounceAndWarn(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Announce("Powering on %s", "default @ /vm/a")
	p.Warn("restore of %s failed", "default")

	out := buf.String()
	if !strings.Contains(out, "Powering on default @ /vm/a\n") {
		t.Errorf("output %q missing announcement", out)
	}
	if !strings.Contains(out, "Warning: restore of default failed") {
		t.Errorf("output %q missing warning", out)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Table("/vm/a", []Row{{"default", "running"}, {"worker10", "poweroff"}})
	p.Table("/vm/b", nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"/vm/a",
		"  default   running",
		"  worker10  poweroff",
		"/vm/b",
		"  (no boxes)",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
