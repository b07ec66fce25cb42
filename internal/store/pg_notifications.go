package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

const maxNotificationPageSize = 100

// CreateNotification stores a notification
func (s *pgStore) CreateNotification(ctx context.Context, input CreateNotificationInput) (*schema.Notification, error) {
	notification := schema.Notification{
		ID:        newID(),
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Message:   input.Message,
		Data:      input.Data,
		ActionURL: input.ActionURL,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return &notification, nil
}

// GetNotificationsByUserID lists notifications of a user, newest first, with the total count
func (s *pgStore) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int, offset uint64) ([]schema.Notification, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []schema.Notification
	err := query.
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit, maxNotificationPageSize)).
		Offset(int(offset)). //nolint:gosec,G115
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	return notifications, uint64(total), nil //nolint:gosec,G115
}

// MarkNotificationRead flags a notification as read
func (s *pgStore) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_read":    true,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}
