// Package npm wraps the package-manager commands used by the workflows.
package npm

import (
	"context"

	"github.com/jayvee-digital-labs/jvdl/internal/shell"
)

// Client issues npm and npx commands in a project directory.
type Client struct {
	runner shell.CommandRunner
	dir    string
}

// New returns a Client bound to the project in dir.
func New(runner shell.CommandRunner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

func (c *Client) npm(ctx context.Context, args ...string) error {
	_, err := c.runner.Run(ctx, shell.Command{Name: "npm", Args: args, Dir: c.dir})
	return err
}

// Install installs the project's dependencies.
func (c *Client) Install(ctx context.Context) error {
	return c.npm(ctx, "install")
}

// InstallDev adds packages as development dependencies.
func (c *Client) InstallDev(ctx context.Context, packages ...string) error {
	args := append([]string{"install"}, packages...)
	return c.npm(ctx, append(args, "--save-dev")...)
}

// RunScript runs a package.json script by name.
func (c *Client) RunScript(ctx context.Context, name string) error {
	return c.npm(ctx, "run", name)
}

// Publish publishes the package to the configured registry.
func (c *Client) Publish(ctx context.Context) error {
	return c.npm(ctx, "publish")
}

// Exec runs a package binary through npx.
func (c *Client) Exec(ctx context.Context, args ...string) error {
	_, err := c.runner.Run(ctx, shell.Command{Name: "npx", Args: args, Dir: c.dir})
	return err
}
