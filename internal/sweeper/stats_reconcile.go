package sweeper

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/aggregator"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/metrics"
	"github.com/inorbyt/chain-sync/internal/store"
)

const (
	STATS_RECONCILE_SWEEPER_NAME     = "stats-reconcile"
	DEFAULT_STATS_RECONCILE_INTERVAL = 15 * time.Minute
	DEFAULT_STATS_RECONCILE_WORKERS  = 4

	// recompute attempts per token and cycle
	recomputeMaxRetries = 2
)

// StatsReconcileSweeperConfig holds configuration for the stats reconcile sweeper
type StatsReconcileSweeperConfig struct {
	Interval        time.Duration
	WorkerPoolSize  int
	WorkerQueueSize int
	// RetryInterval is the first wait before retrying a failed recompute
	RetryInterval time.Duration
}

type statsReconcileSweeper struct {
	*periodic
	config     StatsReconcileSweeperConfig
	store      store.Store
	aggregator aggregator.Aggregator
}

// NewStatsReconcileSweeper creates a sweeper that recomputes the stats of every
// deployed token, so derived fields converge after a lost recompute race
func NewStatsReconcileSweeper(cfg StatsReconcileSweeperConfig, st store.Store, agg aggregator.Aggregator, clock adapter.Clock) Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DEFAULT_STATS_RECONCILE_INTERVAL
	}
	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = DEFAULT_STATS_RECONCILE_WORKERS
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}

	s := &statsReconcileSweeper{
		config:     cfg,
		store:      st,
		aggregator: agg,
	}
	s.periodic = newPeriodic(STATS_RECONCILE_SWEEPER_NAME, cfg.Interval, clock, s.runSweepCycle)
	return s
}

func (s *statsReconcileSweeper) runSweepCycle(ctx context.Context) error {
	tokenIDs, err := s.store.GetDeployedTokenIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get deployed tokens: %w", err)
	}
	if len(tokenIDs) == 0 {
		return nil
	}

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	var reconciled, failed atomic.Int32
	for _, tokenID := range tokenIDs {
		pool.Submit(func() {
			if err := s.recomputeWithRetry(ctx, tokenID); err != nil {
				failed.Add(1)
				logger.ErrorCtx(ctx, err, zap.String("token_id", tokenID.String()))
				return
			}
			reconciled.Add(1)
		})
	}
	pool.StopAndWait()

	metrics.SweeperItems.WithLabelValues(STATS_RECONCILE_SWEEPER_NAME, "reconciled").Add(float64(reconciled.Load()))
	metrics.SweeperItems.WithLabelValues(STATS_RECONCILE_SWEEPER_NAME, "failed").Add(float64(failed.Load()))

	logger.InfoCtx(ctx, "Reconciled token stats",
		zap.Int("tokens", len(tokenIDs)),
		zap.Int32("reconciled", reconciled.Load()),
		zap.Int32("failed", failed.Load()))

	return ctx.Err()
}

func (s *statsReconcileSweeper) recomputeWithRetry(ctx context.Context, tokenID uuid.UUID) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.config.RetryInterval
	b.MaxInterval = 10 * s.config.RetryInterval

	operation := func() error {
		if _, err := s.aggregator.Recompute(ctx, tokenID); err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, recomputeMaxRetries), ctx))
}
