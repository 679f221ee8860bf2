package main

import (
	"context"
	"errors"
	"os"
	"time"

	"spendtrack/internal/amqp"
	"spendtrack/internal/backend"
	"spendtrack/internal/cli"
	"spendtrack/internal/log"
	"spendtrack/internal/sheets/google"
	"spendtrack/internal/worker"
)

const resyncInterval = time.Hour

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("starting spendtrack-worker", log.FieldOperation, log.OpStartup)

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the mirror worker")
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	stores, err := backend.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize backend",
			log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		os.Exit(1)
	}

	sheetsClient, err := google.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		logger.Error("failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", log.FieldSheetsRef, sheetsClient.Ref())

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}

	mirror := worker.NewMirror(stores.Ledger, sheetsClient, amqpClient, resyncInterval, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := amqpClient.Close(); err != nil {
			logger.Error("AMQP close error", log.FieldError, err)
		}
		if stores.Cleanup != nil {
			if err := stores.Cleanup(); err != nil {
				logger.Error("backend cleanup error", log.FieldError, err)
			}
		}
	})

	if err := mirror.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mirror worker failed", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("worker stopped gracefully")
}
