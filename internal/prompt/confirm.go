// Package prompt asks the operator for the single yes/no confirmation that
// gates each workflow.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// New picks a Confirmer: auto-approve when assumeYes is set, an
// interactive form on a terminal, and a line reader otherwise.
func New(in *os.File, out io.Writer, assumeYes bool) Confirmer {
	if assumeYes {
		return AutoApprove{}
	}
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &FormConfirmer{}
	}
	return NewLineConfirmer(in, out)
}

// AutoApprove answers yes without asking (--yes).
type AutoApprove struct{}

func (AutoApprove) Confirm(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}

// LineConfirmer reads one answer line. "y" and "yes" in any case mean yes;
// anything else, including EOF, means no.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer reads answers from in and writes the question to out.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *LineConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprintf(c.out, "%s (Y/N): ", message); err != nil {
		return false, err
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// FormConfirmer renders a huh confirm field on an interactive terminal.
type FormConfirmer struct{}

func (c *FormConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Do you want to proceed?").
			Description(message).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
