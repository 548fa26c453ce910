// Package shell runs external tools (git, npm, docker) behind a narrow
// interface so that callers can be tested with a fake.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ErrExternalCommand matches any *CommandError.
var ErrExternalCommand = errors.New("external command failed")

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string

	// Capture collects stdout into Result.Stdout instead of streaming it.
	Capture bool
	// Quiet discards all output.
	Quiet bool
}

// String renders the command line as typed in a terminal.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the outcome of a finished command.
type Result struct {
	Stdout   []byte
	ExitCode int
}

// CommandRunner executes commands and reports their outcome. A non-zero
// exit is returned as a *CommandError.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// CommandError is an opaque failure of an external tool.
type CommandError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%q exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

func (e *CommandError) Is(target error) bool { return target == ErrExternalCommand }

// Script wraps a free-form command line (for example a configured deploy
// command) so it runs through the POSIX shell.
func Script(line, dir string) Command {
	return Command{Name: "sh", Args: []string{"-c", line}, Dir: dir}
}

// ExecRunner runs commands with os/exec. Child output is streamed to
// Stdout and Stderr so the operator sees tool progress live.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// NewExecRunner returns a runner wired to the process's standard streams.
func NewExecRunner(logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // G204: commands are built by this tool
	cmd.Dir = c.Dir
	cmd.Stdin = r.Stdin

	var stdout bytes.Buffer
	switch {
	case c.Quiet:
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	case c.Capture:
		cmd.Stdout = &stdout
		cmd.Stderr = r.Stderr
	default:
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	}

	r.Logger.Debug("exec", zap.String("cmd", c.String()), zap.String("dir", c.Dir))

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes()}
	if err == nil {
		return res, nil
	}

	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	return res, &CommandError{Command: c.String(), ExitCode: res.ExitCode, Err: err}
}
