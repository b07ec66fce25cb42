package jetstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/messaging"
)

const (
	// EventSubjectPrefix prefixes every chain event subject
	EventSubjectPrefix = "chain.events"
	// DefaultNotificationSubjectPrefix prefixes notification subjects
	DefaultNotificationSubjectPrefix = "notifications"
	// duplicateWindow is how long JetStream remembers message ids
	duplicateWindow = 2 * time.Hour
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL                       string
	StreamName                string
	NotificationSubjectPrefix string
	MaxReconnects             int
	ReconnectWait             time.Duration
	ConnectionName            string
	// EnsureStream creates or updates the stream on connect
	EnsureStream bool
}

type publisher struct {
	nc                  adapter.NatsConn
	js                  adapter.JetStream
	notificationSubject string
	json                adapter.JSON
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	prefix := cfg.NotificationSubjectPrefix
	if prefix == "" {
		prefix = DefaultNotificationSubjectPrefix
	}

	if cfg.EnsureStream {
		err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:       cfg.StreamName,
			Subjects:   []string{EventSubjectPrefix + ".>", prefix + ".>"},
			Storage:    jetstream.FileStorage,
			Duplicates: duplicateWindow,
		})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
		}
	}

	return &publisher{
		nc:                  nc,
		js:                  js,
		notificationSubject: prefix,
		json:                jsonAdapter,
	}, nil
}

// PublishEvent publishes a chain event with its dedupe key as the message id
func (p *publisher) PublishEvent(ctx context.Context, event domain.ChainEvent) error {
	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := EventSubject(event)
	ack, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(event.Key()))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	logger.DebugCtx(ctx, "Published chain event",
		zap.String("subject", subject),
		zap.String("key", event.Key()),
		zap.Bool("duplicate", ack != nil && ack.Duplicate))

	return nil
}

// PublishNotification publishes a notification to notifications.<user_id>
func (p *publisher) PublishNotification(ctx context.Context, notification domain.Notification) error {
	data, err := p.json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", p.notificationSubject, notification.UserID)
	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(ulid.Make().String())); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// EventSubject builds chain.events.<chain>.<event_type>, e.g. chain.events.eip155_8453.TokenTransfer
func EventSubject(event domain.ChainEvent) string {
	chain := string(event.Chain)
	if chain == "" {
		chain = string(domain.ChainBaseMainnet)
	}
	chain = strings.ReplaceAll(chain, ":", "_")

	return fmt.Sprintf("%s.%s.%s", EventSubjectPrefix, chain, event.EventType)
}

// Close drains and closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	if err := p.nc.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", zap.Error(err))
		p.nc.Close()
	}
}
