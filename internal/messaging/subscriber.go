package messaging

import (
	"context"

	"github.com/inorbyt/chain-sync/internal/domain"
)

// EventHandler is called for each chain event read from the source
type EventHandler func(event domain.ChainEvent) error

// Subscriber streams chain events from a blockchain node
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeEvents backfills from fromBlock (0 for latest) and then follows new logs
	// until ctx is done or the handler fails
	SubscribeEvents(ctx context.Context, fromBlock uint64, handler EventHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}
