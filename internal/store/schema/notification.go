package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/inorbyt/chain-sync/internal/domain"
)

// Notification represents the notifications table
type Notification struct {
	ID        uuid.UUID               `gorm:"column:id;primaryKey;type:uuid"`
	UserID    uuid.UUID               `gorm:"column:user_id;not null;type:uuid;index:idx_notifications_user_created,priority:1"`
	Type      domain.NotificationType `gorm:"column:type;not null;type:varchar(50)"`
	Title     string                  `gorm:"column:title;not null;type:varchar(255)"`
	Message   string                  `gorm:"column:message;not null;type:text"`
	IsRead    bool                    `gorm:"column:is_read;not null;default:false"`
	Data      datatypes.JSON          `gorm:"column:data;type:jsonb"`
	ActionURL *string                 `gorm:"column:action_url;type:text"`
	CreatedAt time.Time               `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_notifications_user_created,priority:2"`
	UpdatedAt time.Time               `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
