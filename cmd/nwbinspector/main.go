// Package main provides the CLI for the NWB Inspector.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/catalystneuro/nwbinspector/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
