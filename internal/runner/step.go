package runner

import (
	"context"
	"errors"
)

// Step defines a unit of work in a workflow.
type Step interface {
	// ID returns the step name shown to the operator (e.g. "git:tag").
	ID() string

	// Run executes the step. Returning a *SkipError marks it skipped.
	Run(ctx context.Context) error
}

type funcStep struct {
	id string
	fn func(ctx context.Context) error
}

func (s *funcStep) ID() string                    { return s.id }
func (s *funcStep) Run(ctx context.Context) error { return s.fn(ctx) }

// NewStep adapts a function into a Step.
func NewStep(id string, fn func(ctx context.Context) error) Step {
	return &funcStep{id: id, fn: fn}
}

// SkipError reports that a step chose not to run.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string { return "skipped: " + e.Reason }

// Skip returns an error that marks the current step as skipped.
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}

func isSkip(err error) (*SkipError, bool) {
	var s *SkipError
	ok := errors.As(err, &s)
	return s, ok
}
