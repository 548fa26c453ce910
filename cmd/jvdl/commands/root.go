// SPDX-License-Identifier: AGPL-3.0-or-later

/*
jvdl - release and repository standardization tooling for the Jayvee Digital Labs web team.
It publishes packages from a developer machine when CI/CD is unavailable and brings web app repositories in line with the shared tooling standard.

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jayvee-digital-labs/jvdl/internal/logger"
	"github.com/jayvee-digital-labs/jvdl/internal/projectroot"
	"github.com/jayvee-digital-labs/jvdl/internal/prompt"
	"github.com/jayvee-digital-labs/jvdl/internal/shell"
)

// app holds the global flags and the process-level collaborators shared by
// subcommands.
type app struct {
	verbose bool
	logFile string
	yes     bool
	dir     string

	stdin     *os.File
	newRunner func(*zap.Logger) shell.CommandRunner
	logger    *zap.Logger
}

// NewRootCmd constructs the jvdl root Cobra command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{
		stdin:     os.Stdin,
		newRunner: func(l *zap.Logger) shell.CommandRunner { return shell.NewExecRunner(l) },
	})
}

func newRootCmd(a *app) *cobra.Command {
	version := os.Getenv("JVDL_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "jvdl",
		Short:         "jvdl - local publishing and repository standardization",
		Long:          "jvdl publishes packages from a developer machine and standardizes web app repositories.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogger(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write JSON logs to this file")
	cmd.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.PersistentFlags().StringVarP(&a.dir, "dir", "C", "", "run in this directory instead of the current one")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of jvdl",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "jvdl version %s\n", version)
		},
	})

	cmd.AddCommand(newLocalPublishCmd(a))
	cmd.AddCommand(newStandardizeRepoCmd(a))

	return cmd
}

func (a *app) setupLogger(cmd *cobra.Command) error {
	cfg := logger.DefaultConfig()
	if a.verbose {
		cfg.Level = "debug"
	}
	cfg.File = a.logFile
	cfg.Console = cmd.ErrOrStderr()

	l, err := logger.New(cfg)
	if err != nil {
		return err
	}
	a.logger = l.With(zap.String("run_id", uuid.NewString()), zap.String("command", cmd.Name()))
	a.logger.Debug("starting")
	return nil
}

// startDir returns --dir, or the working directory when it is unset.
func (a *app) startDir() (string, error) {
	if a.dir != "" {
		return filepath.Abs(a.dir)
	}
	return os.Getwd()
}

// workDir resolves the start directory to the enclosing package root.
func (a *app) workDir() (string, error) {
	start, err := a.startDir()
	if err != nil {
		return "", err
	}
	return projectroot.Find(start)
}

func (a *app) confirm(cmd *cobra.Command, message string) (bool, error) {
	return prompt.New(a.stdin, cmd.OutOrStdout(), a.yes).Confirm(cmd.Context(), message)
}
