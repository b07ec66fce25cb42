package ingestor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/aggregator"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/metrics"
	"github.com/inorbyt/chain-sync/internal/notifier"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/types"
)

//go:generate mockgen -source=ingestor.go -destination=../mocks/ingestor.go -package=mocks -mock_names=Ingestor=MockIngestor

const DEFAULT_WORKER_POOL_SIZE = 8

// Status is the outcome of ingesting one event
type Status string

const (
	// StatusProcessed means the event was stored and handled
	StatusProcessed Status = "processed"
	// StatusDuplicate means an event with the same (transaction_hash, log_index) was already stored
	StatusDuplicate Status = "duplicate"
	// StatusFailed means the event was stored but its handler failed; recovery retries it
	StatusFailed Status = "failed"
)

// IngestResult describes what Ingest did with an event
type IngestResult struct {
	Status  Status     `json:"status"`
	EventID *uuid.UUID `json:"event_id,omitempty"`
	Key     string     `json:"key"`
}

// Stored reports whether the event row exists after the call
func (r IngestResult) Stored() bool {
	return r.Status != ""
}

// BatchResult counts the outcomes of ProcessBatch. Duplicates count as successful.
type BatchResult struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// RecoveryResult counts the outcomes of one recovery scan
type RecoveryResult struct {
	Scanned   int `json:"scanned"`
	Recovered int `json:"recovered"`
	Failed    int `json:"failed"`
}

// Config holds ingestor configuration
type Config struct {
	// WorkerPoolSize bounds concurrent ingestion in ProcessBatch
	WorkerPoolSize int
	// RecoveryBatchSize is the maximum number of events one recovery scan retries
	RecoveryBatchSize int
	// MaxAttempts excludes events that already failed this many times from recovery. 0 disables the cutoff.
	MaxAttempts int
}

// Ingestor stores chain events exactly once and applies their effects
type Ingestor interface {
	// Ingest validates, stores and dispatches a single event.
	// A non-nil error with a stored result means the handler failed after the row was written.
	Ingest(ctx context.Context, event domain.ChainEvent) (IngestResult, error)
	// ProcessBatch ingests events concurrently. One failure never aborts the others.
	ProcessBatch(ctx context.Context, events []domain.ChainEvent) BatchResult
	// RecoverFailedEvents retries unprocessed events serially, oldest first.
	// Only a failure to load the events is returned as an error.
	RecoverFailedEvents(ctx context.Context) (RecoveryResult, error)
	// Close waits for in-flight batch work
	Close()
}

type ingestor struct {
	config     Config
	store      store.Store
	holdings   holdings.Updater
	aggregator aggregator.Aggregator
	notifier   notifier.Notifier
	pool       pond.Pool
}

// NewIngestor creates a new event ingestor
func NewIngestor(
	cfg Config,
	st store.Store,
	holdingsUpdater holdings.Updater,
	agg aggregator.Aggregator,
	n notifier.Notifier,
) Ingestor {
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = DEFAULT_WORKER_POOL_SIZE
	}
	if cfg.RecoveryBatchSize <= 0 {
		cfg.RecoveryBatchSize = domain.RECOVERY_BATCH_SIZE
	}

	return &ingestor{
		config:     cfg,
		store:      st,
		holdings:   holdingsUpdater,
		aggregator: agg,
		notifier:   n,
		pool:       pond.NewPool(cfg.WorkerPoolSize),
	}
}

func (i *ingestor) Ingest(ctx context.Context, event domain.ChainEvent) (IngestResult, error) {
	if err := event.Validate(); err != nil {
		metrics.EventsIngested.WithLabelValues(string(event.EventType), "invalid").Inc()
		return IngestResult{}, err
	}

	event = event.Normalize()
	result := IngestResult{Key: event.Key()}
	ctx = logger.WithFields(ctx,
		zap.String("event_key", result.Key),
		zap.String("event_type", string(event.EventType)))

	row, created, err := i.store.InsertBlockchainEvent(ctx, types.ChainEventToSchema(event))
	if err != nil {
		metrics.EventsIngested.WithLabelValues(string(event.EventType), "store_error").Inc()
		return result, fmt.Errorf("failed to store event: %w", err)
	}
	if !created {
		logger.DebugCtx(ctx, "Event already ingested")
		metrics.EventsIngested.WithLabelValues(string(event.EventType), string(StatusDuplicate)).Inc()
		result.Status = StatusDuplicate
		return result, nil
	}
	result.EventID = &row.ID

	if err := i.dispatch(ctx, event); err != nil {
		i.recordFailure(ctx, row.ID, err)
		metrics.EventsIngested.WithLabelValues(string(event.EventType), string(StatusFailed)).Inc()
		result.Status = StatusFailed
		return result, fmt.Errorf("failed to handle %s event: %w", event.EventType, err)
	}

	if err := i.store.MarkBlockchainEventProcessed(ctx, row.ID); err != nil {
		metrics.EventsIngested.WithLabelValues(string(event.EventType), string(StatusFailed)).Inc()
		result.Status = StatusFailed
		return result, fmt.Errorf("failed to mark event processed: %w", err)
	}

	metrics.EventsIngested.WithLabelValues(string(event.EventType), string(StatusProcessed)).Inc()
	result.Status = StatusProcessed
	return result, nil
}

func (i *ingestor) ProcessBatch(ctx context.Context, events []domain.ChainEvent) BatchResult {
	metrics.BatchSize.Observe(float64(len(events)))
	if len(events) == 0 {
		return BatchResult{}
	}

	var successful, failed atomic.Int64
	group := i.pool.NewGroup()
	for idx := range events {
		event := events[idx]
		group.Submit(func() {
			if _, err := i.Ingest(ctx, event); err != nil {
				failed.Add(1)
				logger.WarnCtx(ctx, "Batch event failed",
					zap.Error(err),
					zap.String("transaction_hash", event.TransactionHash),
					zap.Uint("log_index", event.LogIndex))
				return
			}
			successful.Add(1)
		})
	}
	if err := group.Wait(); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("batch group failed: %w", err))
	}

	result := BatchResult{
		Successful: int(successful.Load()),
		Failed:     int(failed.Load()),
	}
	logger.InfoCtx(ctx, "Batch processing complete",
		zap.Int("successful", result.Successful),
		zap.Int("failed", result.Failed))

	return result
}

func (i *ingestor) RecoverFailedEvents(ctx context.Context) (RecoveryResult, error) {
	metrics.RecoveryRuns.Inc()

	rows, err := i.store.GetUnprocessedBlockchainEvents(ctx, i.config.RecoveryBatchSize, i.config.MaxAttempts)
	if err != nil {
		return RecoveryResult{}, fmt.Errorf("failed to load unprocessed events: %w", err)
	}

	result := RecoveryResult{Scanned: len(rows)}
	if len(rows) == 0 {
		return result, nil
	}
	logger.InfoCtx(ctx, "Recovering unprocessed events", zap.Int("count", len(rows)))

	for _, row := range rows {
		if ctx.Err() != nil {
			logger.WarnCtx(ctx, "Recovery interrupted", zap.Error(ctx.Err()))
			break
		}

		event := types.SchemaToChainEvent(row)
		eventCtx := logger.WithFields(ctx,
			zap.String("event_id", row.ID.String()),
			zap.String("event_key", event.Key()),
			zap.Int("attempts", row.Attempts))

		if err := i.dispatch(eventCtx, event); err != nil {
			i.recordFailure(eventCtx, row.ID, err)
			metrics.RecoveryEvents.WithLabelValues("failed").Inc()
			result.Failed++
			continue
		}
		if err := i.store.MarkBlockchainEventProcessed(eventCtx, row.ID); err != nil {
			logger.ErrorCtx(eventCtx, fmt.Errorf("failed to mark recovered event processed: %w", err))
			metrics.RecoveryEvents.WithLabelValues("failed").Inc()
			result.Failed++
			continue
		}
		metrics.RecoveryEvents.WithLabelValues("recovered").Inc()
		result.Recovered++
	}

	logger.InfoCtx(ctx, "Recovery complete",
		zap.Int("scanned", result.Scanned),
		zap.Int("recovered", result.Recovered),
		zap.Int("failed", result.Failed))

	return result, nil
}

func (i *ingestor) Close() {
	i.pool.StopAndWait()
}

// dispatch runs the handler for the event type. Unknown types have no handler.
func (i *ingestor) dispatch(ctx context.Context, event domain.ChainEvent) error {
	var handle func(context.Context, domain.ChainEvent) error
	switch event.EventType {
	case domain.EventTypeTokenTransfer:
		handle = i.handleTransfer
	case domain.EventTypeTokenPurchase:
		handle = i.handlePurchase
	case domain.EventTypePerkRedeemed:
		handle = i.handlePerkRedeemed
	case domain.EventTypePriceUpdate:
		handle = i.handlePriceUpdate
	case domain.EventTypeTokenDeployed:
		handle = i.handleTokenDeployed
	default:
		logger.WarnCtx(ctx, "Unhandled event type, storing without dispatch")
		return nil
	}

	start := time.Now()
	err := handle(ctx, event)
	metrics.HandlerLatency.WithLabelValues(string(event.EventType)).Observe(time.Since(start).Seconds())
	return err
}

func (i *ingestor) recordFailure(ctx context.Context, id uuid.UUID, cause error) {
	if errors.Is(cause, domain.ErrNotFound) || errors.Is(cause, domain.ErrValidation) {
		logger.WarnCtx(ctx, "Event handler rejected event", zap.Error(cause))
	} else {
		logger.ErrorCtx(ctx, fmt.Errorf("event handler failed: %w", cause))
	}

	if err := i.store.RecordBlockchainEventFailure(ctx, id, cause.Error()); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record event failure: %w", err))
	}
}
