// Package main provides the entry point for the stacks CLI tool.
package main

import (
	"context"
	"os"
	"time"

	"github.com/agentstation/stacks/cmd/stacks/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())

	runErr := application.Execute(ctx, os.Args[1:])
	cancel()

	// Fresh context: the signal context may already be cancelled
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	shutdownErr := application.Shutdown(shutdownCtx)
	shutdownCancel()

	if runErr != nil {
		app.ExitOnError(runErr)
	}
	app.ExitOnError(shutdownErr)
}
