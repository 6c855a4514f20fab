package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"habernexus/internal/app"
	"habernexus/internal/config"
	"habernexus/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := app.New(cfg, logger).Run(ctx); err != nil {
		logger.Error("worker exited", "error", err)
		os.Exit(1)
	}
}
