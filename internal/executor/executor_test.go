package executor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputCapturesStdout(t *testing.T) {
	dir := t.TempDir()
	e := &Exec{}

	out, err := e.Output(dir, "sh", "-c", "pwd; echo noise >&2")
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	got := strings.TrimSpace(out)
	want, _ := filepath.EvalSymlinks(dir)
	if resolved, _ := filepath.EvalSymlinks(got); resolved != want {
		t.Errorf("Output = %q, want working dir %q", got, want)
	}
	if strings.Contains(out, "noise") {
		t.Errorf("stderr leaked into output: %q", out)
	}
}

func TestOutputFailure(t *testing.T) {
	e := &Exec{}
	_, err := e.Output(t.TempDir(), "sh", "-c", "echo broken >&2; exit 3")
	if err == nil {
		t.Fatal("expected error")
	}
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %T, want *ExecError", err)
	}
	if execErr.Stderr != "broken" {
		t.Errorf("Stderr = %q, want %q", execErr.Stderr, "broken")
	}
	if !strings.Contains(err.Error(), "exit status 3") {
		t.Errorf("Error() = %q, missing exit status", err.Error())
	}
}

func TestRunStreamsOutput(t *testing.T) {
	var stdout bytes.Buffer
	e := &Exec{Stdout: &stdout, Stderr: &stdout}

	if err := e.Run(t.TempDir(), "echo", "hello"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stdout.String() != "hello\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "hello\n")
	}
}

func TestRunFailure(t *testing.T) {
	e := &Exec{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := e.Run(t.TempDir(), "sh", "-c", "exit 1")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ExecError", err)
	}
}

func TestRunMissingBinary(t *testing.T) {
	e := &Exec{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := e.Run(t.TempDir(), "definitely-not-a-real-binary-upkeep")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ExecError", err)
	}
}

func TestDryRunDoesNotExecute(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	e := &Exec{Stdout: &stdout, DryRun: true}

	if err := e.Run(dir, "touch", "marker"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); !os.IsNotExist(err) {
		t.Errorf("dry run executed the command (stat err = %v)", err)
	}
	if !strings.Contains(stdout.String(), "Dry running: touch marker") {
		t.Errorf("stdout = %q, want dry run notice", stdout.String())
	}
}

func TestRequire(t *testing.T) {
	if _, err := Require("sh"); err != nil {
		t.Errorf("Require(sh): %v", err)
	}
	_, err := Require("definitely-not-a-real-binary-upkeep")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Require(missing) = %v, want ErrToolNotFound", err)
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"vagrant", []string{"up", "default"}, "vagrant up default"},
		{"vagrant", []string{"ssh", "-c", "env TOPGRADE_PREFIX=a topgrade"}, `vagrant ssh -c "env TOPGRADE_PREFIX=a topgrade"`},
		{"vagrant", nil, "vagrant"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := CommandLine(tt.name, tt.args...); got != tt.want {
				t.Errorf("CommandLine = %q, want %q", got, tt.want)
			}
		})
	}
}
