package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/adapter"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/metrics"
	jsprovider "github.com/inorbyt/chain-sync/internal/providers/jetstream"
)

const (
	DEFAULT_WORKER_POOL_SIZE  = 20
	DEFAULT_WORKER_QUEUE_SIZE = 2048
	nakDelay                  = 5 * time.Second
)

// Acknowledgement outcomes recorded in metrics
const (
	ackOutcomeAck  = "ack"
	ackOutcomeNak  = "nak"
	ackOutcomeTerm = "term"
)

// Config holds the configuration for the event bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
	// WorkerPoolSize bounds the messages handled concurrently
	WorkerPoolSize int
	// WorkerQueueSize bounds the messages waiting for a worker
	WorkerQueueSize int
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run consumes chain events until ctx is done
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc       adapter.NatsConn
	js       adapter.JetStream
	ingestor ingestor.Ingestor
	json     adapter.JSON
	config   Config
}

// NewBridge creates a new event bridge feeding JetStream messages to the ingestor
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	ing ingestor.Ingestor,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
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

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = DEFAULT_WORKER_POOL_SIZE
	}
	if cfg.WorkerQueueSize <= 0 {
		cfg.WorkerQueueSize = DEFAULT_WORKER_QUEUE_SIZE
	}

	return &bridge{
		nc:       nc,
		js:       js,
		ingestor: ing,
		json:     jsonAdapter,
		config:   cfg,
	}, nil
}

// Run starts the event bridge. Messages in flight when ctx is done are
// finished before Run returns.
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting event bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: jsprovider.EventSubjectPrefix + ".>",
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	pool := pond.NewPool(b.config.WorkerPoolSize, pond.WithQueueSize(b.config.WorkerQueueSize))
	handlerCtx := context.WithoutCancel(ctx)

	sub, err := consumer.Consume(func(msg adapter.Message) {
		pool.Submit(func() {
			b.handleMessage(handlerCtx, msg)
		})
	})
	if err != nil {
		pool.StopAndWait()
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	logger.Info("Started consuming messages")

	<-ctx.Done()
	logger.Info("Shutting down event bridge")

	sub.Stop()
	pool.StopAndWait()

	return ctx.Err()
}

// handleMessage ingests one message. Undecodable or invalid events are
// terminated, a failed store write is redelivered, and everything else is
// acknowledged because a stored event is retried by recovery.
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	var deliveries uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		deliveries = metadata.NumDelivered
	}

	var event domain.ChainEvent
	if err := b.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal event"), zap.String("subject", msg.Subject()))
		b.term(msg)
		return
	}

	ctx = logger.WithFields(ctx,
		zap.String("key", event.Key()),
		zap.String("event_type", string(event.EventType)),
	)
	logger.DebugCtx(ctx, "Received event", zap.Uint64("delivery_count", deliveries))

	result, err := b.ingestor.Ingest(ctx, event)
	switch {
	case err == nil:
		b.ack(ctx, msg)
	case result.Stored():
		logger.WarnCtx(ctx, "Event stored but handler failed, leaving it to recovery",
			zap.Error(err),
			zap.String("status", string(result.Status)))
		b.ack(ctx, msg)
	case errors.Is(err, domain.ErrValidation):
		logger.WarnCtx(ctx, "Dropping invalid event", zap.Error(err))
		b.term(msg)
	default:
		logger.ErrorCtx(ctx, fmt.Errorf("failed to store event: %w", err),
			zap.Uint64("delivery_count", deliveries))
		if err := msg.NakWithDelay(nakDelay); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
		}
		metrics.BridgeMessages.WithLabelValues(ackOutcomeNak).Inc()
	}
}

func (b *bridge) ack(ctx context.Context, msg adapter.Message) {
	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
	metrics.BridgeMessages.WithLabelValues(ackOutcomeAck).Inc()
}

func (b *bridge) term(msg adapter.Message) {
	if err := msg.Term(); err != nil {
		logger.Error(err, zap.String("message", "Failed to terminate message"))
	}
	metrics.BridgeMessages.WithLabelValues(ackOutcomeTerm).Inc()
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
