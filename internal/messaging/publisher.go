package messaging

import (
	"context"

	"github.com/inorbyt/chain-sync/internal/domain"
)

// Publisher defines the interface for publishing to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a chain event. The broker drops a republish of the same log.
	PublishEvent(ctx context.Context, event domain.ChainEvent) error
	// PublishNotification publishes a notification on the recipient's subject
	PublishNotification(ctx context.Context, notification domain.Notification) error
	// Close closes the connection
	Close()
}
