// Package publish implements the local release workflow: bump the version
// from the latest commit, amend and tag, push, build docs, deploy and
// publish.
package publish

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jayvee-digital-labs/jvdl/internal/config"
	"github.com/jayvee-digital-labs/jvdl/internal/npm"
	"github.com/jayvee-digital-labs/jvdl/internal/release"
	"github.com/jayvee-digital-labs/jvdl/internal/runner"
	"github.com/jayvee-digital-labs/jvdl/internal/shell"
	"github.com/jayvee-digital-labs/jvdl/internal/vcs"
)

// Options configures one publish run.
type Options struct {
	Dir     string
	DryMode bool
	Config  config.LocalPublish
}

// Result describes what the run produced.
type Result struct {
	PreviousVersion string
	Version         string
	Bump            release.Bump
	Tag             string
	CommitMessage   string
	Summary         runner.Summary
}

// Publisher runs the release steps against one package.
type Publisher struct {
	opts   Options
	cmd    shell.CommandRunner
	git    *vcs.Git
	npm    *npm.Client
	steps  *runner.Runner
	logger *zap.Logger
}

// New wires a Publisher. cmd executes every external tool.
func New(cmd shell.CommandRunner, steps *runner.Runner, logger *zap.Logger, opts Options) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		opts:   opts,
		cmd:    cmd,
		git:    vcs.New(cmd, opts.Dir),
		npm:    npm.New(cmd, opts.Dir),
		steps:  steps,
		logger: logger,
	}
}

// Run executes the workflow and stops at the first failing step. There is
// no rollback: a failure after the amend leaves the commit amended.
func (p *Publisher) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	summary, err := p.steps.Run(ctx, p.plan(res))
	res.Summary = summary
	if err != nil {
		return res, err
	}
	return res, nil
}

func (p *Publisher) plan(res *Result) []runner.Step {
	cfg := p.opts.Config
	manifestPath := filepath.Join(p.opts.Dir, "package.json")

	return []runner.Step{
		runner.NewStep("version:next", func(ctx context.Context) error {
			m, err := release.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			current, err := m.Version()
			if err != nil {
				return err
			}
			msg, err := p.git.LastCommitMessage(ctx)
			if err != nil {
				return err
			}
			bump, err := release.Classify(msg)
			if err != nil {
				return err
			}
			next, err := release.Next(current, bump)
			if err != nil {
				return err
			}

			res.PreviousVersion = current
			res.Version = next
			res.Bump = bump
			res.Tag = release.TagName(next)
			res.CommitMessage = msg
			p.logger.Info("calculated next version",
				zap.String("current", current),
				zap.String("next", next),
				zap.String("bump", string(bump)))
			return nil
		}),
		runner.NewStep("version:write", func(ctx context.Context) error {
			m, err := release.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			m.SetRelease(res.Version, res.CommitMessage)
			return m.Save()
		}),
		runner.NewStep("npm:install", p.npm.Install),
		runner.NewStep("npm:build", func(ctx context.Context) error {
			return p.npm.RunScript(ctx, cfg.BuildScript)
		}),
		runner.NewStep("npm:test", func(ctx context.Context) error {
			return p.npm.RunScript(ctx, cfg.TestScript)
		}),
		runner.NewStep("git:stage", func(ctx context.Context) error {
			return p.git.Add(ctx, "package.json", "package-lock.json")
		}),
		runner.NewStep("git:amend", p.git.AmendNoEdit),
		runner.NewStep("git:tag", func(ctx context.Context) error {
			if p.opts.DryMode {
				return runner.Skip("dry mode")
			}
			return p.git.Tag(ctx, res.Tag)
		}),
		runner.NewStep("git:push", func(ctx context.Context) error {
			if p.opts.DryMode {
				return runner.Skip("dry mode")
			}
			if err := p.git.Push(ctx, cfg.Remote, cfg.Branch); err != nil {
				return err
			}
			return p.git.PushTags(ctx, cfg.Remote)
		}),
		runner.NewStep("storybook:build", func(ctx context.Context) error {
			if cfg.StorybookScript == "" {
				return runner.Skip("npm-build-storybook not configured")
			}
			return p.npm.RunScript(ctx, cfg.StorybookScript)
		}),
		runner.NewStep("deploy", func(ctx context.Context) error {
			if p.opts.DryMode {
				return runner.Skip("dry mode")
			}
			if cfg.DeployCommand == "" {
				return runner.Skip("deploy command not configured")
			}
			if _, err := p.cmd.Run(ctx, shell.Script(cfg.DeployCommand, p.opts.Dir)); err != nil {
				return fmt.Errorf("deploying: %w", err)
			}
			return nil
		}),
		runner.NewStep("npm:publish", func(ctx context.Context) error {
			if p.opts.DryMode {
				return runner.Skip("dry mode")
			}
			if !cfg.EnableNpmPublish {
				return runner.Skip("enable-npm-publish is off")
			}
			return p.npm.Publish(ctx)
		}),
	}
}
