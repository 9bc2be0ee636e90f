package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/storefront-crm/internal/config"
	"github.com/joao-fontenele/storefront-crm/internal/messaging"
	"github.com/joao-fontenele/storefront-crm/internal/notify"
	"github.com/joao-fontenele/storefront-crm/internal/persistence"
	"github.com/joao-fontenele/storefront-crm/internal/settings"
	"github.com/joao-fontenele/storefront-crm/internal/telemetry"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger(os.Stdout)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdownTracer, err := telemetry.InitTracerProvider(ctx, "notifier", "0.1.0", cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			logger.Error("failed to initialize tracer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	kv, closer, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	var sender notify.Sender = notify.NewLogSender(logger)
	if cfg.Notifier.MailRelayURL != "" {
		httpClient := &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
		sender = notify.NewRelaySender(cfg.Notifier.MailRelayURL, httpClient)
	}

	handler := notify.NewHandler(sender, func(ctx context.Context) (settings.Settings, error) {
		return settings.Load(ctx, kv, logger)
	}, logger)

	consumer := messaging.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, logger)
	defer func() { _ = consumer.Close() }()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting notifier", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)

	if err := consumer.Consume(ctx, handler.Handle); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			logger.Info("consumer stopped")
			return
		}
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}
