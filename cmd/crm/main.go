package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/joao-fontenele/storefront-crm/internal/api"
	"github.com/joao-fontenele/storefront-crm/internal/config"
	"github.com/joao-fontenele/storefront-crm/internal/messaging"
	"github.com/joao-fontenele/storefront-crm/internal/persistence"
	"github.com/joao-fontenele/storefront-crm/internal/store"
	"github.com/joao-fontenele/storefront-crm/internal/telemetry"
)

const (
	serviceName    = "crm"
	serviceVersion = "0.1.0"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := cfg.NewLogger(os.Stdout)

	if cfg.Telemetry.Enabled {
		shutdownTracer, err := telemetry.InitTracerProvider(ctx, serviceName, serviceVersion, cfg.Telemetry.OTLPEndpoint)
		if err != nil {
			logger.Error("failed to initialize tracer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownTracer(ctx) }()
	}

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	kv, closer, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	data, err := persistence.LoadData(ctx, kv, logger)
	if err != nil {
		logger.Error("failed to load collections", "error", err)
		os.Exit(1)
	}

	var s *store.Store
	storeMetrics, err := telemetry.NewStoreMetrics(otel.Meter(serviceName), func() store.Data { return s.Snapshot() })
	if err != nil {
		logger.Error("failed to register store metrics", "error", err)
		os.Exit(1)
	}

	opts := []store.Option{
		store.WithLogger(logger),
		store.WithObserver(persistence.NewSnapshotWriter(kv)),
		store.WithObserver(storeMetrics),
	}
	if cfg.ReconcileOrderAggregates {
		opts = append(opts, store.WithOrderReconciliation())
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := messaging.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, messaging.WithAsync(logger))
		defer func() { _ = producer.Close() }()
		opts = append(opts, store.WithObserver(messaging.NewChangePublisher(producer)))
	}
	s = store.New(data, opts...)

	handler := api.NewHandler(s, kv, logger)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("GET /metrics", metricsHandler)

	server := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: otelhttp.NewHandler(mux, serviceName,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting crm service",
			"port", cfg.Server.Port,
			"storage", cfg.Storage.Backend,
			"products", len(data.Products),
			"customers", len(data.Customers),
			"orders", len(data.Orders),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
