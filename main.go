// Package main is the entry point for the expense ledger CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/yelinaung/expense-ledger/internal/cli"
	"gitlab.com/yelinaung/expense-ledger/internal/config"
	"gitlab.com/yelinaung/expense-ledger/internal/ledger"
	"gitlab.com/yelinaung/expense-ledger/internal/logger"
	"gitlab.com/yelinaung/expense-ledger/internal/repository"
	"gitlab.com/yelinaung/expense-ledger/internal/store"
	"gitlab.com/yelinaung/expense-ledger/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to load config")
		return 1
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	logger.InitHashSalt()

	shutdown, err := telemetry.Setup(ctx, telemetry.Settings{
		Exporter:    cfg.TelemetryExporter,
		ServiceName: cfg.ServiceName,
		Version:     version,
	})
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to set up telemetry")
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to flush telemetry")
		}
	}()

	backend, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Log.Error().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open store")
		return 1
	}
	defer closeStore()

	svc, err := ledger.New(backend)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to create ledger")
		return 1
	}

	app := &cli.App{
		Ledger:      svc,
		Users:       repository.NewUserRepository(backend),
		DefaultUser: cfg.DefaultUserID,
		Version:     fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
