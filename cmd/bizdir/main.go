// Package main provides the entry point for the bizdir CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/calviaapp/bizdir/cmd/bizdir/cmd"
	"github.com/calviaapp/bizdir/pkg/logging"
)

// version is populated at build time.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cmd.NewRootCmd(version)
	if err := root.ExecuteContext(ctx); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
