package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/config"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/metrics"
)

const (
	DEFAULT_KEY_PREFIX          = "chain-sync:api:limiter:"
	DEFAULT_FALLBACK_MULTIPLIER = 0.5
	HEALTH_CHECK_INTERVAL       = 10 * time.Second
	MAX_LOCAL_KEYS              = 10000
	healthCheckTimeout          = 2 * time.Second
	startupPingTimeout          = 5 * time.Second
)

// ErrLimiterClosed is returned by Allow after Close
var ErrLimiterClosed = errors.New("rate limiter is closed")

// Backend names the limiter that made a decision
type Backend string

const (
	BackendRedis Backend = "redis"
	BackendLocal Backend = "local"
)

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	Backend    Backend
}

// Limiter limits requests per client key
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow takes one request from the key's budget
	Allow(ctx context.Context, key string) (Decision, error)
	// Close stops the health monitor and closes the Redis connection
	Close() error
}

type limiter struct {
	config         config.RateLimitConfig
	redis          adapter.RedisLimiter
	clock          adapter.Clock
	limit          redis_rate.Limit
	localRate      rate.Limit
	localMu        sync.Mutex
	local          map[string]*rate.Limiter
	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	done           chan struct{}
	wg             sync.WaitGroup
}

// NewLimiter creates a limiter backed by Redis, with an optional in-process fallback
func NewLimiter(cfg config.RateLimitConfig, rc adapter.RedisLimiter, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupPingTimeout)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx); err != nil {
		redisAvailable = false
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
	}

	// Every replica limits on its own while Redis is down, so the local rate is scaled
	localRate := max(float64(cfg.RequestsPerSecond)*cfg.LocalFallbackMultiplier, 1.0)

	l := &limiter{
		config: cfg,
		redis:  rc,
		clock:  clock,
		limit: redis_rate.Limit{
			Rate:   cfg.RequestsPerSecond,
			Burst:  cfg.Burst,
			Period: time.Second,
		},
		localRate: rate.Limit(localRate),
		local:     make(map[string]*rate.Limiter),
		done:      make(chan struct{}),
	}
	l.redisAvailable.Store(redisAvailable)

	l.wg.Add(1)
	go l.monitorRedisHealth()

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("redis_available", redisAvailable),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return l, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.closed.Load() {
		return Decision{}, ErrLimiterClosed
	}

	if l.redisAvailable.Load() {
		decision, err := l.allowDistributed(ctx, key)
		if err == nil {
			record(decision)
			return decision, nil
		}
		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}

		// Redis error - mark as unavailable and fall back to local if enabled
		l.redisAvailable.Store(false)
		if !l.config.EnableLocalFallback {
			return Decision{}, fmt.Errorf("redis rate limiter unavailable: %w", err)
		}
		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local", zap.Error(err))
	}

	if !l.config.EnableLocalFallback {
		return Decision{}, errors.New("redis rate limiter unavailable")
	}

	decision := l.allowLocal(key)
	record(decision)
	return decision, nil
}

func (l *limiter) allowDistributed(ctx context.Context, key string) (Decision, error) {
	res, err := l.redis.Allow(ctx, l.config.RedisKeyPrefix+key, l.limit)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{
		Allowed:   res.Allowed > 0,
		Remaining: res.Remaining,
		Backend:   BackendRedis,
	}
	if !decision.Allowed {
		decision.RetryAfter = res.RetryAfter
		logger.DebugCtx(ctx, "Rate limit exceeded",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter))
	}
	return decision, nil
}

func (l *limiter) allowLocal(key string) Decision {
	now := l.clock.Now()
	lim := l.localLimiter(key)

	reservation := lim.ReserveN(now, 1)
	if !reservation.OK() {
		return Decision{Backend: BackendLocal, RetryAfter: time.Second}
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return Decision{Backend: BackendLocal, RetryAfter: delay}
	}

	return Decision{
		Allowed:   true,
		Remaining: max(int(lim.TokensAt(now)), 0),
		Backend:   BackendLocal,
	}
}

func (l *limiter) localLimiter(key string) *rate.Limiter {
	l.localMu.Lock()
	defer l.localMu.Unlock()

	lim, ok := l.local[key]
	if !ok {
		// Fallback state is best effort; dropping it only resets budgets
		if len(l.local) >= MAX_LOCAL_KEYS {
			l.local = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.localRate, l.config.Burst)
		l.local[key] = lim
	}
	return lim
}

// monitorRedisHealth periodically checks Redis health and updates availability status
func (l *limiter) monitorRedisHealth() {
	defer l.wg.Done()

	ticker := l.clock.NewTicker(HEALTH_CHECK_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C():
		}

		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		err := l.redis.Ping(ctx)
		cancel()

		available := err == nil
		wasAvailable := l.redisAvailable.Swap(available)
		if !wasAvailable && available {
			logger.Info("Redis connection restored")
		} else if wasAvailable && !available {
			logger.Warn("Redis health check failed", zap.Error(err))
		}
	}
}

func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
		l.wg.Wait()

		if closeErr := l.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}
	})
	return err
}

func record(decision Decision) {
	outcome := "allowed"
	if !decision.Allowed {
		outcome = "limited"
	}
	metrics.RateLimitDecisions.WithLabelValues(string(decision.Backend), outcome).Inc()
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig) error {
	if cfg.RequestsPerSecond <= 0 {
		return errors.New("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = DEFAULT_KEY_PREFIX
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = DEFAULT_FALLBACK_MULTIPLIER
	}
	return nil
}
