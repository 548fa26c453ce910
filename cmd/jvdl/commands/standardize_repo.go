// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jayvee-digital-labs/jvdl/internal/projectroot"
	"github.com/jayvee-digital-labs/jvdl/internal/runner"
	"github.com/jayvee-digital-labs/jvdl/internal/standardize"
	"github.com/jayvee-digital-labs/jvdl/internal/ux"
)

// DefaultTemplateDir is where the shared scripts package installs the
// standardization templates, relative to the project root.
const DefaultTemplateDir = "node_modules/@jayvee-digital-labs/scripts/bin/standardize-repo"

const standardizeWarning = "This will install required packages, set up Husky hooks, copy configuration files, " +
	"merge JSON files, build a Docker image and standardize the repository. " +
	"It should only be used on Web Apps with TypeScript enabled, not design systems or utility scripts, " +
	"and with at least ONE commit in the repo for a proper rollback if anything fails. " +
	"Do you want to proceed?"

func newStandardizeRepoCmd(a *app) *cobra.Command {
	var (
		templateDir   string
		containerTool string
		skipReset     bool
	)

	cmd := &cobra.Command{
		Use:   "standardize-repo",
		Short: "Apply the shared tooling standard to a web app repository",
		Long: `Installs dev dependencies, sets up Husky hooks, copies configuration files
and directories from the template directory, deep-merges package.json and
tsconfig.json and builds the visual regression test image.

Steps are read from ` + standardize.ManifestFile + ` in the template directory when present.
If any step fails, every file change is rolled back in reverse order, then the
repository is reset with "git reset --hard" and packages are reinstalled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// package.json must be in the directory itself; an enclosing
			// package is never standardized.
			dir, err := a.startDir()
			if err != nil {
				return err
			}
			if info, err := os.Stat(filepath.Join(dir, projectroot.Marker)); err != nil || info.IsDir() {
				return withExitCode(fmt.Errorf("%w: %s not found in %s", standardize.ErrPrecondition, projectroot.Marker, dir))
			}
			templates := templateDir
			if !filepath.IsAbs(templates) {
				templates = filepath.Join(dir, templates)
			}
			manifest, err := standardize.LoadManifest(templates)
			if err != nil {
				return withExitCode(fmt.Errorf("%w: %w", standardize.ErrPrecondition, err))
			}

			s := standardize.New(a.newRunner(a.logger), runner.New(out, a.logger), a.logger, standardize.Options{
				Dir:           dir,
				TemplateDir:   templates,
				ContainerTool: containerTool,
				SkipReset:     skipReset,
			})
			if !skipReset && s.Dirty(cmd.Context()) {
				_, _ = fmt.Fprintln(out, ux.Warning("uncommitted changes will be discarded by git reset --hard if a step fails"))
			}

			ok, err := a.confirm(cmd, ux.Alert(standardizeWarning))
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(out, "Operation aborted.")
				return nil
			}

			res, err := s.Run(cmd.Context(), manifest)
			if err != nil {
				if res.Rollback != nil {
					for _, w := range res.Rollback.Warnings {
						_, _ = fmt.Fprintln(out, ux.Warning(w))
					}
				}
				if res.ResetErr != nil {
					a.logger.Error("environment reset failed", zap.Error(res.ResetErr))
					_, _ = fmt.Fprintln(out, ux.Warning("environment reset failed: "+res.ResetErr.Error()))
				}
				return withExitCode(err)
			}

			_, _ = fmt.Fprintln(out, ux.Success("Repository has been standardized."))
			return nil
		},
	}

	cmd.Flags().StringVar(&templateDir, "templates", DefaultTemplateDir, "directory holding the template files")
	cmd.Flags().StringVar(&containerTool, "container-tool", "docker", "container image builder")
	cmd.Flags().BoolVar(&skipReset, "skip-reset", false, "after a rollback, do not run git reset --hard and npm install")
	return cmd
}
