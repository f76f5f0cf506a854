package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/pcview/internal/app"
	"github.com/vancomm/pcview/internal/config"
	"github.com/vancomm/pcview/internal/database"
	"github.com/vancomm/pcview/internal/pc"
	"github.com/vancomm/pcview/internal/solution"
)

func main() {
	envErr := config.LoadEnv()
	logger := config.NewLogger()
	if envErr != nil {
		logger.Error("failed to load .env", slog.Any("error", envErr))
		os.Exit(1)
	}

	if err := config.SetupCoreLog(pc.Log); err != nil {
		logger.Error("failed to set up field logging", slog.Any("error", err))
		os.Exit(1)
	}
	if err := config.SetupCoreLog(solution.Log); err != nil {
		logger.Error("failed to set up solution logging", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := app.New(logger, database.Migrations)
	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start app", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
