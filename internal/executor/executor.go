package executor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// ErrToolNotFound is returned by Require when a binary is not on PATH.
var ErrToolNotFound = errors.New("tool not found")

// Runner runs external commands in a working directory.
type Runner interface {
	// Output runs the command and returns its stdout.
	Output(dir, name string, args ...string) (string, error)
	// Run runs the command with its output streamed to the terminal.
	Run(dir, name string, args ...string) error
}

// ExecError describes a command that could not be started or exited non-zero.
type ExecError struct {
	Dir    string
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s failed in %s", CommandLine(e.Name, e.Args...), e.Dir)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg + ": " + e.Err.Error()
}

func (e *ExecError) Unwrap() error { return e.Err }

// Exec is the Runner backed by os/exec.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
	// DryRun makes Run print the command instead of executing it.
	// Output always executes.
	DryRun bool
	Logger *slog.Logger
}

// New returns an Exec writing to the process stdout and stderr.
func New(dryRun bool, logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exec{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		DryRun: dryRun,
		Logger: logger.With("component", "executor"),
	}
}

func (e *Exec) Output(dir, name string, args ...string) (string, error) {
	e.logger().Debug("capturing command output", "dir", dir, "cmd", CommandLine(name, args...))

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &ExecError{
			Dir:    dir,
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.String(), nil
}

func (e *Exec) Run(dir, name string, args ...string) error {
	if e.DryRun {
		fmt.Fprintf(e.stdout(), "Dry running: %s (in %s)\n", CommandLine(name, args...), dir)
		return nil
	}

	e.logger().Debug("running command", "dir", dir, "cmd", CommandLine(name, args...))

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.stdout()
	cmd.Stderr = e.stderr()
	if err := cmd.Run(); err != nil {
		return &ExecError{Dir: dir, Name: name, Args: args, Err: err}
	}
	return nil
}

func (e *Exec) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e *Exec) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}

func (e *Exec) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Require resolves name on PATH.
func Require(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrToolNotFound, name, err)
	}
	return path, nil
}

// CommandLine renders a command for display, quoting arguments with spaces.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\"") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
