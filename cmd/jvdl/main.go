// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jayvee-digital-labs/jvdl/cmd/jvdl/commands"
	"github.com/jayvee-digital-labs/jvdl/cmd/jvdl/internal/clierr"
	"github.com/jayvee-digital-labs/jvdl/internal/ux"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, ux.Failure(err.Error()))
		os.Exit(clierr.ExitCodeOf(err))
	}
}
