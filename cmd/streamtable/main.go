// Command streamtable renders a stream of records as paged tables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/streamtable/internal/cli"
	"github.com/rshade/streamtable/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Restore default signal handling so a second interrupt kills the process.
		<-ctx.Done()
		stop()
	}()

	root := cli.NewRootCmd(version.GetVersion())
	return extractExitCode(root.ExecuteContext(ctx))
}

// extractExitCode maps the command result to the process exit code.
func extractExitCode(err error) int {
	return cli.ExitCode(err)
}
