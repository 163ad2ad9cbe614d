package main

import (
	"context"
	"os"
	"os/signal"

	"volume-ctl/internal/adapter/primary/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
