package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/metrics"
)

// Sweeper defines the interface for sweeper implementations
// Sweepers are long-running background tasks that perform periodic maintenance
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start begins the sweeper's main loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the sweeper
	// This should wait for any in-progress work to complete
	Stop(ctx context.Context) error

	// Name returns the sweeper's name for logging and identification
	Name() string
}

// periodic runs a cycle, sleeps for the interval and repeats until stopped
type periodic struct {
	name      string
	interval  time.Duration
	clock     adapter.Clock
	cycle     func(ctx context.Context) error
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

func newPeriodic(name string, interval time.Duration, clock adapter.Clock, cycle func(ctx context.Context) error) *periodic {
	return &periodic{
		name:      name,
		interval:  interval,
		clock:     clock,
		cycle:     cycle,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (p *periodic) Name() string {
	return p.name
}

// Start runs the first cycle immediately
func (p *periodic) Start(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper %s already running", p.name)
	}
	defer func() {
		p.running.Store(false)
		close(p.stoppedCh)
	}()

	ctx = logger.WithFields(ctx, zap.String("sweeper", p.name))
	logger.InfoCtx(ctx, "Starting sweeper", zap.Duration("interval", p.interval))

	for {
		startTime := p.clock.Now()
		err := p.cycle(ctx)
		switch {
		case err == nil:
			metrics.SweeperCycles.WithLabelValues(p.name, "success").Inc()
			logger.InfoCtx(ctx, "Sweep cycle completed", zap.Duration("duration", p.clock.Since(startTime)))
		case errors.Is(err, context.Canceled):
		default:
			metrics.SweeperCycles.WithLabelValues(p.name, "error").Inc()
			logger.ErrorCtx(ctx, err, zap.String("message", "Sweep cycle failed"))
		}

		if !p.sleep(ctx, p.interval) {
			logger.InfoCtx(ctx, "Sweeper stopped")
			return nil
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (p *periodic) Stop(ctx context.Context) error {
	if !p.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping sweeper", zap.String("sweeper", p.name))
	close(p.stopChan)

	select {
	case <-p.stoppedCh:
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Sweeper stop interrupted by context timeout", zap.String("sweeper", p.name))
		return ctx.Err()
	}
}

// sleep returns false when interrupted by the context or a stop request
func (p *periodic) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-p.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-p.stopChan:
		return false
	}
}
