package emitter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/messaging"
	"github.com/inorbyt/chain-sync/internal/metrics"
	"github.com/inorbyt/chain-sync/internal/store"
)

const (
	DEFAULT_CURSOR_FLUSH_BLOCKS   = 50
	DEFAULT_CURSOR_FLUSH_INTERVAL = 30 * time.Second
)

// Config holds the configuration for the event emitter
type Config struct {
	ChainID         domain.Chain
	StartBlock      uint64
	CursorSaveFreq  uint64        // Save cursor every N blocks
	CursorSaveDelay time.Duration // Or save cursor every N seconds
}

// Emitter defines the interface for the event emitter
type Emitter interface {
	// Run streams chain events to the broker until ctx is done or the source fails
	Run(ctx context.Context) error
	// Close closes the emitter and cleans up resources
	Close()
}

type emitter struct {
	subscriber messaging.Subscriber
	publisher  messaging.Publisher
	cursors    store.CursorStore
	config     Config
	clock      adapter.Clock
}

// NewEmitter creates a new event emitter
func NewEmitter(
	sub messaging.Subscriber,
	pub messaging.Publisher,
	cursors store.CursorStore,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	if cfg.CursorSaveFreq == 0 {
		cfg.CursorSaveFreq = DEFAULT_CURSOR_FLUSH_BLOCKS
	}
	if cfg.CursorSaveDelay <= 0 {
		cfg.CursorSaveDelay = DEFAULT_CURSOR_FLUSH_INTERVAL
	}

	return &emitter{
		subscriber: sub,
		publisher:  pub,
		cursors:    cursors,
		config:     cfg,
		clock:      clock,
	}
}

// Run resolves the start block and publishes every event the subscriber yields.
// The cursor holds the block of the last published event; a restart resumes at
// that block and the broker drops the republished logs.
func (e *emitter) Run(ctx context.Context) error {
	chain := string(e.config.ChainID)
	ctx = logger.WithFields(ctx, zap.String("chain", chain))

	startBlock, err := e.startBlock(ctx)
	if err != nil {
		return err
	}

	lastSavedBlock := uint64(0)
	lastSaveTime := e.clock.Now()
	lastBlock := uint64(0)

	saveCursor := func(ctx context.Context, block uint64) {
		if err := e.cursors.SetBlockCursor(ctx, chain, block); err != nil {
			logger.WarnCtx(ctx, "Failed to save block cursor", zap.Error(err), zap.Uint64("block", block))
			return
		}
		lastSavedBlock = block
		lastSaveTime = e.clock.Now()
		metrics.EmitterBlockCursor.WithLabelValues(chain).Set(float64(block))
	}

	handler := func(event domain.ChainEvent) error {
		if event.Chain == "" {
			event.Chain = e.config.ChainID
		}

		if err := e.publisher.PublishEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to publish event %s: %w", event.Key(), err)
		}
		metrics.EmitterLogs.WithLabelValues(chain, string(event.EventType)).Inc()
		lastBlock = event.BlockNumber

		if event.BlockNumber-lastSavedBlock >= e.config.CursorSaveFreq ||
			e.clock.Since(lastSaveTime) >= e.config.CursorSaveDelay {
			saveCursor(ctx, event.BlockNumber)
		}

		return nil
	}

	logger.InfoCtx(ctx, "Starting event subscription", zap.Uint64("fromBlock", startBlock))
	err = e.subscriber.SubscribeEvents(ctx, startBlock, handler)

	if lastBlock > lastSavedBlock {
		saveCursor(context.WithoutCancel(ctx), lastBlock)
	}

	return err
}

func (e *emitter) startBlock(ctx context.Context) (uint64, error) {
	if e.config.StartBlock > 0 {
		logger.InfoCtx(ctx, "Starting from configured block", zap.Uint64("block", e.config.StartBlock))
		return e.config.StartBlock, nil
	}

	lastBlock, err := e.cursors.GetBlockCursor(ctx, string(e.config.ChainID))
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}
	if lastBlock > 0 {
		logger.InfoCtx(ctx, "Resuming from last processed block", zap.Uint64("block", lastBlock))
		return lastBlock, nil
	}

	latestBlock, err := e.subscriber.GetLatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	logger.InfoCtx(ctx, "Starting from latest block", zap.Uint64("block", latestBlock))

	return latestBlock, nil
}

// Close closes the emitter and cleans up resources
func (e *emitter) Close() {
	e.subscriber.Close()
	e.publisher.Close()
}
