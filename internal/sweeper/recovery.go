package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/metrics"
)

const (
	RECOVERY_SWEEPER_NAME     = "recovery-sweeper"
	DEFAULT_RECOVERY_INTERVAL = time.Minute
)

// RecoverySweeperConfig holds configuration for the recovery sweeper
type RecoverySweeperConfig struct {
	Interval time.Duration
}

type recoverySweeper struct {
	*periodic
	ingestor ingestor.Ingestor
}

// NewRecoverySweeper creates a sweeper that retries unprocessed chain events.
// Handlers recompute derived state themselves, so the sweeper only drives retries.
func NewRecoverySweeper(cfg RecoverySweeperConfig, ing ingestor.Ingestor, clock adapter.Clock) Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DEFAULT_RECOVERY_INTERVAL
	}

	s := &recoverySweeper{ingestor: ing}
	s.periodic = newPeriodic(RECOVERY_SWEEPER_NAME, cfg.Interval, clock, s.runSweepCycle)
	return s
}

func (s *recoverySweeper) runSweepCycle(ctx context.Context) error {
	result, err := s.ingestor.RecoverFailedEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to recover events: %w", err)
	}

	metrics.SweeperItems.WithLabelValues(RECOVERY_SWEEPER_NAME, "recovered").Add(float64(result.Recovered))
	metrics.SweeperItems.WithLabelValues(RECOVERY_SWEEPER_NAME, "failed").Add(float64(result.Failed))

	return nil
}
