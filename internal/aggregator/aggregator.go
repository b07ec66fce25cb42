package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/metrics"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/types"
)

//go:generate mockgen -source=aggregator.go -destination=../mocks/aggregator.go -package=mocks -mock_names=Aggregator=MockAggregator

// TokenStats holds the derived statistics of a token
type TokenStats struct {
	TokenID      uuid.UUID `json:"token_id"`
	TotalHolders int64     `json:"total_holders"`
	TotalVolume  string    `json:"total_volume"`
	FloorPrice   string    `json:"floor_price"`
}

// Aggregator recomputes per-token statistics from holdings and confirmed transactions
type Aggregator interface {
	// Recompute derives holder count, volume and floor price for the token and
	// overwrites them on the token row. Concurrent recomputes are last write wins.
	Recompute(ctx context.Context, tokenID uuid.UUID) (*TokenStats, error)
}

type aggregator struct {
	store store.Store
}

// NewAggregator creates a new aggregator
func NewAggregator(store store.Store) Aggregator {
	return &aggregator{store: store}
}

func (a *aggregator) Recompute(ctx context.Context, tokenID uuid.UUID) (*TokenStats, error) {
	start := time.Now()
	stats, err := a.recompute(ctx, tokenID)
	metrics.StatsRecomputeLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StatsRecomputes.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.StatsRecomputes.WithLabelValues("ok").Inc()
	return stats, nil
}

func (a *aggregator) recompute(ctx context.Context, tokenID uuid.UUID) (*TokenStats, error) {
	token, err := a.store.GetTokenByID(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if token == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTokenNotFound, tokenID)
	}

	holders, err := a.store.CountActiveHoldings(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to count holders: %w", err)
	}

	volume, err := a.store.SumConfirmedVolume(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum volume: %w", err)
	}

	prices, err := a.store.GetRecentConfirmedPrices(ctx, tokenID, domain.FLOOR_PRICE_WINDOW)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent prices: %w", err)
	}

	stats, err := ComputeStats(token.StartingPrice, holders, volume, prices)
	if err != nil {
		return nil, err
	}
	stats.TokenID = tokenID

	if err := a.store.UpdateTokenStats(ctx, tokenID, store.TokenStatsInput{
		TotalHolders: stats.TotalHolders,
		TotalVolume:  stats.TotalVolume,
		FloorPrice:   stats.FloorPrice,
	}); err != nil {
		return nil, fmt.Errorf("failed to update token stats: %w", err)
	}

	logger.DebugCtx(ctx, "Recomputed token stats",
		zap.String("token_id", tokenID.String()),
		zap.Int64("total_holders", stats.TotalHolders),
		zap.String("total_volume", stats.TotalVolume),
		zap.String("floor_price", stats.FloorPrice))

	return &stats, nil
}

// ComputeStats derives token statistics. The floor price is the truncated mean
// of recentPrices, or startingPrice when there are none.
func ComputeStats(startingPrice string, holders int64, volume string, recentPrices []string) (TokenStats, error) {
	if volume == "" {
		volume = "0"
	}
	if _, err := types.ParseNumeric(volume); err != nil {
		return TokenStats{}, fmt.Errorf("invalid volume: %w", err)
	}

	floor := startingPrice
	if len(recentPrices) > 0 {
		mean, err := types.MeanNumeric(recentPrices)
		if err != nil {
			return TokenStats{}, fmt.Errorf("invalid price: %w", err)
		}
		floor = mean
	}

	return TokenStats{
		TotalHolders: holders,
		TotalVolume:  volume,
		FloorPrice:   floor,
	}, nil
}
