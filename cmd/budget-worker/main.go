package main

import (
	"context"
	"errors"
	"os"
	"time"

	"budgetpro/internal/amqp"
	"budgetpro/internal/cli"
	"budgetpro/internal/config"
	applog "budgetpro/internal/log"
	"budgetpro/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting budget-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.DataBackend != config.BackendSQLite {
		logger.Error("budget-worker reads the shared snapshot and requires DATA_BACKEND=sqlite", "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("budget-worker requires AMQP_URL")
		os.Exit(1)
	}
	// The worker consumes; it never publishes.
	amqpURL := cfg.AMQPURL
	cfg.AMQPURL = ""

	factory, bcfg, backend := cli.InitBackend(context.Background(), logger, cfg)
	defer backend.Cleanup()

	exporter, err := factory.CreateExporter(context.Background(), bcfg)
	if err != nil {
		logger.Error("Failed to initialize stats exporter", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	consumer, err := amqp.ConnectWithRetry(ctx, amqpURL, cfg.AMQPExchange, cfg.AMQPQueue, 10)
	if err != nil {
		logger.Error("Failed to connect to AMQP", applog.FieldError, err)
		os.Exit(1)
	}
	defer consumer.Close()

	now := cli.Clock(cfg)
	exportWorker := worker.NewExportWorker(backend.Repository, exporter, cfg.ExportConcurrency, now)

	// Refresh the sheet once in case notifications were missed while down.
	if err := exportWorker.ExportYear(ctx, now().Year()); err != nil {
		logger.Error("Startup export failed", applog.FieldError, err)
	}

	go func() {
		if err := consumer.ConsumeSnapshotChanges(ctx, exportWorker.HandleSnapshotChanged); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", applog.FieldError, err)
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
