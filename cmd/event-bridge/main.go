package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/aggregator"
	"github.com/inorbyt/chain-sync/internal/bridge"
	"github.com/inorbyt/chain-sync/internal/config"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/messaging"
	"github.com/inorbyt/chain-sync/internal/notifier"
	"github.com/inorbyt/chain-sync/internal/providers/jetstream"
	"github.com/inorbyt/chain-sync/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEventBridgeConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "event-bridge",
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "event-bridge",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Event Bridge")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()

	var notificationPublisher messaging.Publisher
	if cfg.Notifications.Publish {
		notificationPublisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:                       cfg.NATS.URL,
			StreamName:                cfg.NATS.StreamName,
			NotificationSubjectPrefix: cfg.Notifications.SubjectPrefix,
			MaxReconnects:             cfg.NATS.MaxReconnects,
			ReconnectWait:             cfg.NATS.ReconnectWait,
			ConnectionName:            cfg.NATS.ConnectionName + "-notifications",
		}, natsJS, jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer notificationPublisher.Close()
	}

	notif := notifier.NewNotifier(notifier.Config{
		PublishWorkers: cfg.Notifications.PublishWorkers,
		PublishTimeout: cfg.Notifications.PublishTimeout,
	}, dataStore, notificationPublisher)
	defer notif.Close()

	ing := ingestor.NewIngestor(ingestor.Config{
		WorkerPoolSize:    cfg.Ingestor.WorkerPoolSize,
		RecoveryBatchSize: cfg.Ingestor.RecoveryBatchSize,
		MaxAttempts:       cfg.Ingestor.MaxAttempts,
	}, dataStore, holdings.NewUpdater(dataStore), aggregator.NewAggregator(dataStore), notif)
	defer ing.Close()

	// Create bridge
	eventBridge, err := bridge.NewBridge(
		bridge.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			ConsumerName:    cfg.NATS.ConsumerName,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			AckWaitTimeout:  cfg.NATS.AckWait,
			MaxDeliver:      cfg.NATS.MaxDeliver,
			WorkerPoolSize:  cfg.Worker.WorkerPoolSize,
			WorkerQueueSize: cfg.Worker.WorkerQueueSize,
		},
		natsJS,
		ing,
		jsonAdapter,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event bridge", zap.Error(err))
	}
	defer eventBridge.Close()
	logger.InfoCtx(ctx, "Event bridge created",
		zap.String("stream", cfg.NATS.StreamName),
		zap.String("consumer", cfg.NATS.ConsumerName))

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		if err := eventBridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "bridge"))
	}
	cancel()

	// Run drains in-flight messages before returning
	select {
	case <-doneCh:
	case <-time.After(30 * time.Second):
		logger.Warn("Timed out waiting for in-flight messages")
	}

	logger.Info("Event Bridge stopped")
}
