package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Runner executes steps in order and stops at the first failure.
type Runner struct {
	out    io.Writer
	logger *zap.Logger
}

// New creates a runner that prints step banners to out.
func New(out io.Writer, logger *zap.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{out: out, logger: logger}
}

// Run executes steps sequentially. A failing step ends the sequence; its
// error is returned wrapped with the step ID.
func (r *Runner) Run(ctx context.Context, steps []Step) (Summary, error) {
	summary := Summary{Status: "pass"}

	for _, step := range steps {
		id := step.ID()

		_, _ = fmt.Fprintln(r.out, "")
		_, _ = fmt.Fprintln(r.out, rule)
		_, _ = fmt.Fprintf(r.out, "STEP: %s\n", id)
		_, _ = fmt.Fprintln(r.out, rule)

		if err := ctx.Err(); err != nil {
			summary.Status = "fail"
			summary.Failed = id
			summary.Results = append(summary.Results, StepResult{Step: id, Status: StatusFail, Note: err.Error()})
			return summary, fmt.Errorf("%s: %w", id, err)
		}

		start := time.Now()
		err := step.Run(ctx)
		elapsed := time.Since(start)

		if skip, ok := isSkip(err); ok {
			summary.Results = append(summary.Results, StepResult{Step: id, Status: StatusSkip, Note: skip.Reason})
			_, _ = fmt.Fprintf(r.out, "SKIP: %s (%s)\n", id, skip.Reason)
			r.logger.Debug("step skipped", zap.String("step", id), zap.String("reason", skip.Reason))
			continue
		}

		if err != nil {
			summary.Status = "fail"
			summary.Failed = id
			summary.Results = append(summary.Results, StepResult{Step: id, Status: StatusFail, Note: err.Error()})
			_, _ = fmt.Fprintf(r.out, "FAIL: %s\n", id)
			r.logger.Error("step failed", zap.String("step", id), zap.Duration("elapsed", elapsed), zap.Error(err))
			return summary, fmt.Errorf("%s: %w", id, err)
		}

		summary.Results = append(summary.Results, StepResult{Step: id, Status: StatusPass})
		_, _ = fmt.Fprintf(r.out, "PASS: %s\n", id)
		r.logger.Debug("step passed", zap.String("step", id), zap.Duration("elapsed", elapsed))
	}

	return summary, nil
}
