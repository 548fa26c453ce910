// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"

	"github.com/jayvee-digital-labs/jvdl/cmd/jvdl/internal/clierr"
	"github.com/jayvee-digital-labs/jvdl/internal/projectroot"
	"github.com/jayvee-digital-labs/jvdl/internal/release"
	"github.com/jayvee-digital-labs/jvdl/internal/shell"
	"github.com/jayvee-digital-labs/jvdl/internal/standardize"
)

// withExitCode attaches the process exit code matching err.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, standardize.ErrRolledBack):
		return clierr.Wrap(clierr.CodeRolledBack, "", err)
	case errors.Is(err, standardize.ErrPrecondition),
		errors.Is(err, projectroot.ErrNotFound),
		errors.Is(err, release.ErrNonConventionalCommit),
		errors.Is(err, release.ErrInvalidVersion):
		return clierr.Wrap(clierr.CodeUsage, "", err)
	case errors.Is(err, shell.ErrExternalCommand):
		return clierr.Wrap(clierr.CodeExternal, "", err)
	}
	return err
}
