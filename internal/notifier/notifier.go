package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/messaging"
	"github.com/inorbyt/chain-sync/internal/metrics"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier

const (
	DEFAULT_PUBLISH_WORKERS = 4
	DEFAULT_PUBLISH_TIMEOUT = 10 * time.Second
)

// Config holds notifier configuration
type Config struct {
	// PublishWorkers bounds concurrent broker publishes
	PublishWorkers int
	// PublishTimeout bounds the total retry time of one publish
	PublishTimeout time.Duration
}

// Notifier stores user notifications and forwards them to the broker
type Notifier interface {
	// Notify stores the notification and publishes it in the background.
	// Only the database write can fail the call.
	Notify(ctx context.Context, notification domain.Notification) (*schema.Notification, error)
	// Close waits for in-flight publishes
	Close()
}

type notifier struct {
	config    Config
	store     store.Store
	publisher messaging.Publisher
	pool      pond.Pool
}

// NewNotifier creates a notifier. publisher may be nil, in which case notifications are only stored.
func NewNotifier(cfg Config, st store.Store, publisher messaging.Publisher) Notifier {
	if cfg.PublishWorkers <= 0 {
		cfg.PublishWorkers = DEFAULT_PUBLISH_WORKERS
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = DEFAULT_PUBLISH_TIMEOUT
	}

	n := &notifier{
		config:    cfg,
		store:     st,
		publisher: publisher,
	}
	if publisher != nil {
		n.pool = pond.NewPool(cfg.PublishWorkers)
	}
	return n
}

func (n *notifier) Notify(ctx context.Context, notification domain.Notification) (*schema.Notification, error) {
	userID, err := uuid.Parse(notification.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id %q", domain.ErrValidation, notification.UserID)
	}

	var data datatypes.JSON
	if len(notification.Data) > 0 {
		raw, err := json.Marshal(notification.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification data: %w", err)
		}
		data = datatypes.JSON(raw)
	}

	row, err := n.store.CreateNotification(ctx, store.CreateNotificationInput{
		UserID:    userID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		Data:      data,
		ActionURL: notification.ActionURL,
	})
	if err != nil {
		metrics.NotificationsPublished.WithLabelValues(string(notification.Type), "store_error").Inc()
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	if n.pool == nil {
		metrics.NotificationsPublished.WithLabelValues(string(notification.Type), "stored").Inc()
		return row, nil
	}

	// the request context may end before the publish does
	publishCtx := context.WithoutCancel(ctx)
	n.pool.Submit(func() {
		n.publish(publishCtx, notification)
	})

	return row, nil
}

func (n *notifier) publish(ctx context.Context, notification domain.Notification) {
	ctx, cancel := context.WithTimeout(ctx, n.config.PublishTimeout)
	defer cancel()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = n.config.PublishTimeout

	operation := func() error {
		return n.publisher.PublishNotification(ctx, notification)
	}
	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Notification publish failed, retrying",
			zap.Error(err),
			zap.String("user_id", notification.UserID),
			zap.Duration("next_retry_in", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		metrics.NotificationsPublished.WithLabelValues(string(notification.Type), "publish_error").Inc()
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish notification: %w", err),
			zap.String("user_id", notification.UserID),
			zap.String("type", string(notification.Type)))
		return
	}

	metrics.NotificationsPublished.WithLabelValues(string(notification.Type), "published").Inc()
}

func (n *notifier) Close() {
	if n.pool != nil {
		n.pool.StopAndWait()
	}
}
