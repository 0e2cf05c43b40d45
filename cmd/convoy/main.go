package main

import (
	"log/slog"
	"os"

	"github.com/aryankumar/convoy/internal/cli"
	"github.com/aryankumar/convoy/internal/util"
)

func main() {
	// Setup signal handling so jobs see SIGINT/SIGTERM through their
	// exec context
	ctx := util.SetupSignalHandler()

	// Execute the CLI
	if err := cli.Execute(ctx); err != nil {
		slog.Error("command failed", "error", util.FriendlyError(err))
		os.Exit(1)
	}
}
