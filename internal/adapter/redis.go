package adapter

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a Redis connection used for distributed GCRA rate limiting
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisLimiter=MockRedisLimiter
type RedisLimiter interface {
	// Ping checks that Redis is reachable
	Ping(ctx context.Context) error
	// Allow takes one token for key under limit
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
	Close() error
}

type realRedisLimiter struct {
	client  *redis.Client
	limiter *redis_rate.Limiter
}

// NewRedisLimiter connects a rate limiter to the Redis server at addr
func NewRedisLimiter(addr, password string, db int) RedisLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &realRedisLimiter{
		client:  client,
		limiter: redis_rate.NewLimiter(client),
	}
}

func (r *realRedisLimiter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *realRedisLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return r.limiter.Allow(ctx, key, limit)
}

func (r *realRedisLimiter) Close() error {
	return r.client.Close()
}
