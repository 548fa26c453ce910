// Package container builds images with a docker-compatible CLI.
package container

import (
	"context"
	"fmt"

	"github.com/jayvee-digital-labs/jvdl/internal/shell"
)

// DefaultTool is the container CLI used when none is configured.
const DefaultTool = "docker"

// Builder runs image builds from a build context directory.
type Builder struct {
	runner shell.CommandRunner
	tool   string
	dir    string
}

// New returns a Builder using tool (docker, podman, ...) in dir.
func New(runner shell.CommandRunner, tool, dir string) *Builder {
	if tool == "" {
		tool = DefaultTool
	}
	return &Builder{runner: runner, tool: tool, dir: dir}
}

// Tool returns the container CLI name.
func (b *Builder) Tool() string { return b.tool }

// CheckAvailable verifies the container CLI can be executed.
func (b *Builder) CheckAvailable(ctx context.Context) error {
	_, err := b.runner.Run(ctx, shell.Command{Name: b.tool, Args: []string{"--version"}, Dir: b.dir, Quiet: true})
	if err != nil {
		return fmt.Errorf("%s is not installed or not available in the PATH: %w", b.tool, err)
	}
	return nil
}

// Build builds dockerfile into an image tagged tag, using the bound
// directory as build context.
func (b *Builder) Build(ctx context.Context, tag, dockerfile string) error {
	_, err := b.runner.Run(ctx, shell.Command{
		Name: b.tool,
		Args: []string{"build", "-t", tag, "-f", dockerfile, "."},
		Dir:  b.dir,
	})
	return err
}
