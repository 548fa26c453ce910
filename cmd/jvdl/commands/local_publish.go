// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jayvee-digital-labs/jvdl/cmd/jvdl/internal/clierr"
	"github.com/jayvee-digital-labs/jvdl/internal/config"
	"github.com/jayvee-digital-labs/jvdl/internal/publish"
	"github.com/jayvee-digital-labs/jvdl/internal/runner"
	"github.com/jayvee-digital-labs/jvdl/internal/ux"
)

const publishWarning = "This will run tests, update the version, create a git tag, push to the release branch, " +
	"build the storybook static files, deploy them and finally publish to NPM. " +
	"It should only be used on the release branch with ONE commit using `feat`, `feat!` or `fix`. " +
	"THIS IS ONLY MEANT TO BE USED LOCALLY AS A TEMPORARY CI/CD PROCESS OR IF CI/CD IS BROKEN. " +
	"Do you want to proceed?"

func newLocalPublishCmd(a *app) *cobra.Command {
	var dryMode bool

	cmd := &cobra.Command{
		Use:   "local-publish",
		Short: "Version, tag, push, deploy and publish the package from this machine",
		Long: `Bumps package.json from the latest commit message (feat!: major, feat: minor,
fix: patch), amends the commit, tags v<version>, pushes, builds storybook,
runs the deploy command and publishes to npm.

Settings are read from ` + config.FileName + ` under the "` + config.Section + `" key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if dryMode {
				_, _ = fmt.Fprintln(out, ux.DryMode("Running in dry mode..."))
			}

			dir, err := a.workDir()
			if err != nil {
				return withExitCode(err)
			}
			cfg, err := config.LoadLocalPublish(dir)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "", err)
			}
			a.logger.Debug("configuration loaded", zap.String("dir", dir), zap.Any("config", cfg))

			ok, err := a.confirm(cmd, ux.Alert(publishWarning))
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(out, "Operation aborted.")
				return nil
			}

			p := publish.New(a.newRunner(a.logger), runner.New(out, a.logger), a.logger, publish.Options{
				Dir:     dir,
				DryMode: dryMode,
				Config:  cfg,
			})
			res, err := p.Run(cmd.Context())
			if err != nil {
				return withExitCode(err)
			}

			msg := fmt.Sprintf("published %s (%s bump from %s)", res.Tag, res.Bump, res.PreviousVersion)
			if dryMode {
				msg = fmt.Sprintf("dry run complete: %s would be %s", res.PreviousVersion, res.Version)
			}
			_, _ = fmt.Fprintln(out, ux.Success(msg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryMode, "dry-mode", false, "skip tagging, pushing, deploying and publishing")
	return cmd
}
