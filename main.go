package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"news-indexer/bootstrap"

	"github.com/joho/godotenv"
)

func main() {
	reconcile := flag.Bool("reconcile", false, "run the duplicate reconciliation sweep once and exit")
	flag.Parse()

	// Optional .env for local development; ignore when absent.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.Run(ctx, *reconcile); err != nil {
		os.Exit(1)
	}
}
