package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bassamadnan/mailsort/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := commands.Execute(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
