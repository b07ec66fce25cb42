package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/aggregator"
	"github.com/inorbyt/chain-sync/internal/config"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/messaging"
	"github.com/inorbyt/chain-sync/internal/notifier"
	"github.com/inorbyt/chain-sync/internal/providers/jetstream"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "sweeper",
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()

	// Recovered events may notify users
	var notificationPublisher messaging.Publisher
	if cfg.Notifications.Publish {
		notificationPublisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:                       cfg.NATS.URL,
			StreamName:                cfg.NATS.StreamName,
			NotificationSubjectPrefix: cfg.Notifications.SubjectPrefix,
			MaxReconnects:             cfg.NATS.MaxReconnects,
			ReconnectWait:             cfg.NATS.ReconnectWait,
			ConnectionName:            cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
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

	agg := aggregator.NewAggregator(dataStore)
	ing := ingestor.NewIngestor(ingestor.Config{
		WorkerPoolSize:    cfg.Ingestor.WorkerPoolSize,
		RecoveryBatchSize: cfg.Ingestor.RecoveryBatchSize,
		MaxAttempts:       cfg.Ingestor.MaxAttempts,
	}, dataStore, holdings.NewUpdater(dataStore), agg, notif)
	defer ing.Close()

	var sweepers []sweeper.Sweeper
	if cfg.RecoverySweeper.Enabled {
		sweepers = append(sweepers, sweeper.NewRecoverySweeper(sweeper.RecoverySweeperConfig{
			Interval: cfg.RecoverySweeper.Interval,
		}, ing, clock))
	}
	if cfg.StatsReconcileSweeper.Enabled {
		sweepers = append(sweepers, sweeper.NewStatsReconcileSweeper(sweeper.StatsReconcileSweeperConfig{
			Interval:        cfg.StatsReconcileSweeper.Interval,
			WorkerPoolSize:  cfg.StatsReconcileSweeper.Worker.WorkerPoolSize,
			WorkerQueueSize: cfg.StatsReconcileSweeper.Worker.WorkerQueueSize,
		}, dataStore, agg, clock))
	}
	if len(sweepers) == 0 {
		logger.WarnCtx(ctx, "No sweeper enabled, exiting")
		return
	}

	// Start every sweeper in its own goroutine
	var wg sync.WaitGroup
	errChan := make(chan error, len(sweepers))
	for _, s := range sweepers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.InfoCtx(ctx, "Initialized sweeper", zap.String("sweeper", s.Name()))
			if err := s.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", s.Name(), err)
			}
		}()
	}

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Give the sweepers time to finish their cycle
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	for _, s := range sweepers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("sweeper", s.Name()))
		}
	}
	cancel()
	wg.Wait()

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
