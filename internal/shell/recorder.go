package shell

import (
	"context"
	"fmt"
)

// Recorder is a CommandRunner for tests. It records every command and
// answers from scripted responses instead of starting processes.
type Recorder struct {
	Calls []Command

	stdout map[string]string
	fail   map[string]int

	// Hook, when set, runs before the scripted response is applied.
	// A non-nil error fails the command.
	Hook func(Command) error
}

// NewRecorder returns a Recorder where every command succeeds with no output.
func NewRecorder() *Recorder {
	return &Recorder{
		stdout: map[string]string{},
		fail:   map[string]int{},
	}
}

// Stub makes the command line print stdout.
func (r *Recorder) Stub(line, stdout string) *Recorder {
	r.stdout[line] = stdout
	return r
}

// Fail makes the command line exit with code.
func (r *Recorder) Fail(line string, code int) *Recorder {
	r.fail[line] = code
	return r
}

// Lines returns the recorded command lines in call order.
func (r *Recorder) Lines() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.String())
	}
	return out
}

func (r *Recorder) Run(ctx context.Context, c Command) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, &CommandError{Command: c.String(), ExitCode: -1, Err: err}
	}
	r.Calls = append(r.Calls, c)
	line := c.String()

	if r.Hook != nil {
		if err := r.Hook(c); err != nil {
			return Result{ExitCode: 1}, &CommandError{Command: line, ExitCode: 1, Err: err}
		}
	}
	if code, ok := r.fail[line]; ok {
		return Result{ExitCode: code}, &CommandError{
			Command:  line,
			ExitCode: code,
			Err:      fmt.Errorf("exit status %d", code),
		}
	}
	return Result{Stdout: []byte(r.stdout[line])}, nil
}
