// Package vcs wraps the git commands used by the release and
// standardization workflows.
package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/jayvee-digital-labs/jvdl/internal/shell"
)

// Git issues git commands in a working directory.
type Git struct {
	runner shell.CommandRunner
	dir    string
}

// New returns a Git bound to dir.
func New(runner shell.CommandRunner, dir string) *Git {
	return &Git{runner: runner, dir: dir}
}

func (g *Git) run(ctx context.Context, args ...string) error {
	_, err := g.runner.Run(ctx, shell.Command{Name: "git", Args: args, Dir: g.dir})
	return err
}

func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	res, err := g.runner.Run(ctx, shell.Command{Name: "git", Args: args, Dir: g.dir, Capture: true})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// LastCommitMessage returns the full message of HEAD, trimmed.
func (g *Git) LastCommitMessage(ctx context.Context) (string, error) {
	msg, err := g.output(ctx, "log", "-1", "--pretty=%B")
	if err != nil {
		return "", fmt.Errorf("reading latest commit: %w", err)
	}
	return msg, nil
}

// Add stages paths.
func (g *Git) Add(ctx context.Context, paths ...string) error {
	return g.run(ctx, append([]string{"add"}, paths...)...)
}

// AmendNoEdit folds the index into HEAD keeping its message.
func (g *Git) AmendNoEdit(ctx context.Context) error {
	return g.run(ctx, "commit", "--amend", "--no-edit")
}

// Tag creates a lightweight tag at HEAD.
func (g *Git) Tag(ctx context.Context, name string) error {
	return g.run(ctx, "tag", name)
}

// Push pushes branch to remote, bypassing local hooks.
func (g *Git) Push(ctx context.Context, remote, branch string) error {
	return g.run(ctx, "push", remote, branch, "--no-verify")
}

// PushTags pushes all tags to remote, bypassing local hooks.
func (g *Git) PushTags(ctx context.Context, remote string) error {
	return g.run(ctx, "push", remote, "--tags", "--no-verify")
}

// ResetHard discards uncommitted changes to tracked files.
func (g *Git) ResetHard(ctx context.Context) error {
	return g.run(ctx, "reset", "--hard")
}

// IsDirty reports whether the working tree has uncommitted changes.
func (g *Git) IsDirty(ctx context.Context) (bool, error) {
	out, err := g.output(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("checking working tree: %w", err)
	}
	return out != "", nil
}
