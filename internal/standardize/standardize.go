// Package standardize brings a web-app repository in line with the team
// standard: dev dependencies, git hooks, shared configuration files and a
// visual-regression test image. Any failure rolls back the file changes
// and resets the environment.
package standardize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jayvee-digital-labs/jvdl/internal/container"
	"github.com/jayvee-digital-labs/jvdl/internal/mutator"
	"github.com/jayvee-digital-labs/jvdl/internal/npm"
	"github.com/jayvee-digital-labs/jvdl/internal/runner"
	"github.com/jayvee-digital-labs/jvdl/internal/shell"
	"github.com/jayvee-digital-labs/jvdl/internal/vcs"
)

var (
	// ErrPrecondition is returned when the target cannot be standardized.
	// Nothing has been changed when it is returned.
	ErrPrecondition = errors.New("precondition failed")
	// ErrRolledBack wraps a step failure after rollback has run.
	ErrRolledBack = errors.New("changes rolled back")
)

// Options configures one standardization run.
type Options struct {
	Dir           string // target project
	TemplateDir   string // source of copied and merged files
	ContainerTool string

	// SkipReset disables the git hard reset and reinstall after a rollback.
	SkipReset bool
}

// Result describes the outcome of a run.
type Result struct {
	Summary  runner.Summary
	Rollback *mutator.RollbackReport
	ResetErr error
}

// Standardizer applies a Manifest to a project.
type Standardizer struct {
	opts      Options
	git       *vcs.Git
	npm       *npm.Client
	container *container.Builder
	steps     *runner.Runner
	logger    *zap.Logger
}

// New wires a Standardizer. cmd executes every external tool.
func New(cmd shell.CommandRunner, steps *runner.Runner, logger *zap.Logger, opts Options) *Standardizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Standardizer{
		opts:      opts,
		git:       vcs.New(cmd, opts.Dir),
		npm:       npm.New(cmd, opts.Dir),
		container: container.New(cmd, opts.ContainerTool, opts.Dir),
		steps:     steps,
		logger:    logger,
	}
}

// Run checks preconditions, then applies every manifest step. On failure
// the tracked file mutations are rolled back in reverse order and, unless
// SkipReset is set, the repository is hard-reset and dependencies are
// reinstalled.
//
// The hard reset also discards uncommitted changes the operator made before
// running the tool. Call Dirty first to warn about them.
func (s *Standardizer) Run(ctx context.Context, manifest Manifest) (*Result, error) {
	res := &Result{}

	if err := s.checkPreconditions(ctx, manifest); err != nil {
		return res, err
	}

	mut := mutator.New(s.logger)
	summary, runErr := s.steps.Run(ctx, s.plan(manifest, mut))
	res.Summary = summary
	if runErr == nil {
		s.logger.Info("repository has been standardized", zap.Int("mutations", mut.Len()))
		return res, nil
	}

	report := mut.Rollback()
	res.Rollback = &report
	if report.ResetRequired && !s.opts.SkipReset {
		res.ResetErr = s.reset(context.WithoutCancel(ctx))
	}
	return res, fmt.Errorf("%w: %w", ErrRolledBack, runErr)
}

// Dirty reports whether the target has uncommitted changes that a failed
// run would discard. A repository that cannot be inspected counts as clean.
func (s *Standardizer) Dirty(ctx context.Context) bool {
	dirty, err := s.git.IsDirty(ctx)
	if err != nil {
		s.logger.Debug("could not inspect working tree", zap.Error(err))
		return false
	}
	if dirty && !s.opts.SkipReset {
		s.logger.Warn("working tree has uncommitted changes; a failed run resets them with git reset --hard")
	}
	return dirty
}

func (s *Standardizer) checkPreconditions(ctx context.Context, manifest Manifest) error {
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	if info, err := os.Stat(filepath.Join(s.opts.Dir, "package.json")); err != nil || info.IsDir() {
		return fmt.Errorf("%w: package.json not found in %s", ErrPrecondition, s.opts.Dir)
	}
	if info, err := os.Stat(s.opts.TemplateDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: template directory %s not found", ErrPrecondition, s.opts.TemplateDir)
	}
	if needsContainer(manifest) {
		if err := s.container.CheckAvailable(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrPrecondition, err)
		}
	}
	return nil
}

func (s *Standardizer) reset(ctx context.Context) error {
	s.logger.Info("resetting git repository")
	if err := s.git.ResetHard(ctx); err != nil {
		s.logger.Error("git reset failed", zap.Error(err))
		return fmt.Errorf("resetting repository: %w", err)
	}
	s.logger.Info("reinstalling npm packages")
	if err := s.npm.Install(ctx); err != nil {
		s.logger.Error("npm install failed", zap.Error(err))
		return fmt.Errorf("reinstalling packages: %w", err)
	}
	return nil
}

func (s *Standardizer) plan(manifest Manifest, mut *mutator.Mutator) []runner.Step {
	steps := make([]runner.Step, 0, len(manifest.Steps))
	for _, st := range manifest.Steps {
		steps = append(steps, runner.NewStep(stepID(st), s.action(st, mut)))
	}
	return steps
}

func (s *Standardizer) action(st Step, mut *mutator.Mutator) func(context.Context) error {
	src := filepath.Join(s.opts.TemplateDir, filepath.FromSlash(st.Source))
	dst := filepath.Join(s.opts.Dir, filepath.FromSlash(st.target()))

	switch st.Action {
	case ActionInstallDev:
		return func(ctx context.Context) error { return s.npm.InstallDev(ctx, st.Packages...) }
	case ActionNpx:
		return func(ctx context.Context) error { return s.npm.Exec(ctx, st.Args...) }
	case ActionCopy:
		return func(context.Context) error { return mut.CopyFile(src, dst) }
	case ActionCopyDir:
		return func(context.Context) error { return mut.CopyDirectory(src, dst) }
	case ActionMergeJSON:
		return func(context.Context) error { return mut.MergeJSON(src, dst) }
	case ActionContainerBuild:
		return func(ctx context.Context) error { return s.container.Build(ctx, st.Tag, st.File) }
	}
	return func(context.Context) error { return fmt.Errorf("unknown action %q", st.Action) }
}

func stepID(st Step) string {
	switch st.Action {
	case ActionInstallDev:
		return fmt.Sprintf("%s (%d packages)", st.Action, len(st.Packages))
	case ActionNpx:
		return fmt.Sprintf("%s %s", st.Action, strings.Join(st.Args, " "))
	case ActionContainerBuild:
		return fmt.Sprintf("%s %s", st.Action, st.Tag)
	}
	return fmt.Sprintf("%s %s", st.Action, st.target())
}

func needsContainer(m Manifest) bool {
	for _, st := range m.Steps {
		if st.Action == ActionContainerBuild {
			return true
		}
	}
	return false
}
