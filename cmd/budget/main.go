package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"budgetpro/internal/cli"
	"budgetpro/internal/core"
	apphttp "budgetpro/internal/http"
	applog "budgetpro/internal/log"
	"budgetpro/internal/services"
	"budgetpro/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)
	now := cli.Clock(cfg)

	_, _, backend := cli.InitBackend(context.Background(), logger, cfg)

	svc, err := services.NewBudgetService(context.Background(), services.Options{
		Repository:    backend.Repository,
		Publisher:     backend.Publisher,
		IDs:           core.UUIDGenerator{},
		Now:           now,
		DefaultBudget: cfg.DefaultProjectBudget,
		DefaultEmoji:  cfg.DefaultProjectEmoji,
	})
	if err != nil {
		logger.Error("Failed to start budget service", applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		Location:        cfg.Location(),
		Logger:          logger,
		WritesPerMinute: cfg.WritesPerMinute,
		WriteBurst:      cfg.WriteBurst,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		if err := svc.Close(); err != nil {
			logger.Error("Budget service close error", applog.FieldError, err)
		}
	})

	// The server process is the only writer, so rollover runs here.
	rollover := services.NewRolloverProcessor(svc)
	go worker.RunRollover(ctx, rollover, cfg.RolloverInterval, now)

	logger.Info("Starting budget server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"timezone", cfg.Timezone,
		"amqp_enabled", backend.Publisher != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
