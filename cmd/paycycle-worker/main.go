package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"paycycle/internal/amqp"
	"paycycle/internal/config"
	"paycycle/internal/export/sheets"
	applog "paycycle/internal/log"
	"paycycle/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "alert-worker"})
	applog.SetDefault(logger)

	logger.Info("Starting paycycle-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sheets export is optional; without it alerts are logged and acked.
	var exporter worker.AlertExporter
	if cfg.SheetsSpreadsheetID != "" {
		client, err := sheets.New(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsSheetName)
		if err != nil {
			logger.Error("Failed to initialize Sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Sheets exporter initialized", "spreadsheet_id", cfg.SheetsSpreadsheetID, "sheet", cfg.SheetsSheetName)
	} else {
		logger.Info("Sheets export disabled - no SHEETS_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	alertWorker := worker.NewAlertWorker(exporter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeOverageAlerts(gctx, func(msg *amqp.OverageAlertMessage) error {
			return alertWorker.HandleAlert(gctx, msg)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
