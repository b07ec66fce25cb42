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
	"github.com/inorbyt/chain-sync/internal/config"
	"github.com/inorbyt/chain-sync/internal/emitter"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/providers/ethereum"
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
	cfg, err := config.LoadEthereumEmitterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "ethereum-event-emitter",
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ethereum-event-emitter",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Ethereum Event Emitter", zap.String("chain", string(cfg.Ethereum.ChainID)))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	adapterEthClient, err := ethDialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum WebSocket", zap.Error(err))
	}
	ethereumClient := ethereum.NewClient(cfg.Ethereum.ChainID, adapterEthClient)

	// Initialize NATS publisher
	natsPublisher, err := jetstream.NewPublisher(
		ctx,
		jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			EnsureStream:   cfg.NATS.EnsureStream,
		}, natsJS, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	logger.InfoCtx(ctx, "Connected to NATS JetStream")

	ethSubscriber := ethereum.NewSubscriber(ethereum.Config{
		ChainID:                 cfg.Ethereum.ChainID,
		BackfillBatchBlocks:     cfg.Ethereum.BackfillBatchBlocks,
		ContractRefreshInterval: cfg.Ethereum.ContractRefreshInterval,
	}, ethereumClient, dataStore, clockAdapter)

	eventEmitter := emitter.NewEmitter(
		ethSubscriber,
		natsPublisher,
		dataStore,
		emitter.Config{
			ChainID:         cfg.Ethereum.ChainID,
			StartBlock:      cfg.Ethereum.StartBlock,
			CursorSaveFreq:  cfg.Ethereum.CursorFlushBlocks,
			CursorSaveDelay: cfg.Ethereum.CursorFlushInterval,
		},
		clockAdapter,
	)
	// closes the subscriber and the publisher
	defer eventEmitter.Close()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		if err := eventEmitter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "emitter"))
	}
	cancel()

	// Run persists the final cursor before returning
	select {
	case <-doneCh:
	case <-time.After(10 * time.Second):
		logger.Warn("Timed out waiting for the emitter to stop")
	}

	logger.Info("Ethereum Event Emitter stopped")
}
