package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"name-reconciliation/cmd/reconciler/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cobra already printed the error.
	if err := cmd.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
