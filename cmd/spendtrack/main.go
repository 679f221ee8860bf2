package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"spendtrack/internal/amqp"
	"spendtrack/internal/backend"
	"spendtrack/internal/cli"
	"spendtrack/internal/config"
	apphttp "spendtrack/internal/http"
	"spendtrack/internal/ledger"
	"spendtrack/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	stores, err := backend.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize backend",
			log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		os.Exit(1)
	}

	budgets, err := config.LoadBudgets(cfg.BudgetsFile)
	if err != nil {
		logger.Error("failed to load budgets", log.FieldError, err)
		os.Exit(1)
	}

	// AMQP is optional; without it mutations simply publish nothing.
	var publisher ledger.ChangePublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without change notifications",
				log.FieldError, err)
		} else {
			publisher = amqpClient
			logger.Info("AMQP client initialized",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	svc := ledger.NewService(stores.Ledger, stores.Categories, budgets, publisher)
	srv := apphttp.NewServer(":"+cfg.Port, svc, cfg.ReportsDir, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Error("AMQP close error", log.FieldError, err)
			}
		}
		if stores.Cleanup != nil {
			if err := stores.Cleanup(); err != nil {
				logger.Error("backend cleanup error", log.FieldError, err)
			}
		}
	})

	logger.Info("starting spendtrack server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("server stopped gracefully")
}
