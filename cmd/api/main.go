package main

import (
	"context"
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
	"github.com/inorbyt/chain-sync/internal/api/middleware"
	"github.com/inorbyt/chain-sync/internal/api/server"
	"github.com/inorbyt/chain-sync/internal/api/shared/executor"
	"github.com/inorbyt/chain-sync/internal/config"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/messaging"
	"github.com/inorbyt/chain-sync/internal/notifier"
	"github.com/inorbyt/chain-sync/internal/providers/jetstream"
	"github.com/inorbyt/chain-sync/internal/ratelimit"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "api",
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Chain Sync API")

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

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Notifications are always stored; publishing to NATS is optional
	var notificationPublisher messaging.Publisher
	if cfg.Notifications.Publish {
		notificationPublisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:                       cfg.NATS.URL,
			StreamName:                cfg.NATS.StreamName,
			NotificationSubjectPrefix: cfg.Notifications.SubjectPrefix,
			MaxReconnects:             cfg.NATS.MaxReconnects,
			ReconnectWait:             cfg.NATS.ReconnectWait,
			ConnectionName:            cfg.NATS.ConnectionName,
			EnsureStream:              cfg.NATS.EnsureStream,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer notificationPublisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS JetStream")
	}

	notif := notifier.NewNotifier(notifier.Config{
		PublishWorkers: cfg.Notifications.PublishWorkers,
		PublishTimeout: cfg.Notifications.PublishTimeout,
	}, dataStore, notificationPublisher)
	defer notif.Close()

	holdingsUpdater := holdings.NewUpdater(dataStore)
	agg := aggregator.NewAggregator(dataStore)
	ing := ingestor.NewIngestor(ingestor.Config{
		WorkerPoolSize:    cfg.Ingestor.WorkerPoolSize,
		RecoveryBatchSize: cfg.Ingestor.RecoveryBatchSize,
		MaxAttempts:       cfg.Ingestor.MaxAttempts,
	}, dataStore, holdingsUpdater, agg, notif)
	defer ing.Close()

	exec := executor.NewExecutor(executor.Config{
		PlatformWalletAddress: cfg.PlatformWalletAddress,
		Chain:                 cfg.Ethereum.ChainID,
	}, dataStore, ing, holdingsUpdater, agg, notif)

	// Rate limiter
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		redisClient := adapter.NewRedisLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		limiter, err = ratelimit.NewLimiter(cfg.RateLimit, redisClient, clockAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err), zap.String("redis_addr", cfg.Redis.Addr))
		}
		defer func() {
			if err := limiter.Close(); err != nil {
				logger.Warn("Failed to close rate limiter", zap.Error(err))
			}
		}()
		logger.InfoCtx(ctx, "Rate limiting enabled",
			zap.Int("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
	}

	serverConfig := server.Config{
		Debug:              cfg.Debug,
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:       time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:        time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, exec, limiter)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("message", "Server forced to shutdown"))
	}

	logger.Info("API server stopped")
}
