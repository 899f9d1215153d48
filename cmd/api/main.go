package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "todoweb/internal/adapter/http"
	. "todoweb/pkg/config"
	. "todoweb/pkg/tracing"

	"go.uber.org/zap"
)

const serviceName = "todoweb"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := Load()

	logger, err := NewLokiLogger(serviceName, config.LokiURL)

	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	defer logger.Sync()

	telemetry, err := InitTelemetry(ctx, TelemetryConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    config.Environment,
		MetricsPort:    config.MetricsPort,
		OTLPEndpoint:   config.OTLPEndpoint,
	})

	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	defer telemetry.Shutdown(context.Background())

	go func() {
		if err := telemetry.ServeMetrics(); err != nil {
			logger.Logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	telemetry.Metrics.StartSystemMetrics(ctx)

	return api.StartServer(ctx, telemetry.Metrics, logger, config)
}
