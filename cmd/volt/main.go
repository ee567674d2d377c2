// Command volt is the command-line client for Volt workspaces.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/roach88/volt/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	opts := &cli.RootOptions{}
	code := cli.Execute(ctx, cli.NewRootCommandWith(opts), opts)
	stop()
	os.Exit(code)
}
