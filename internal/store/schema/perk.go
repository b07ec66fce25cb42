package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/inorbyt/chain-sync/internal/domain"
)

// Perk represents the perks table - a benefit unlocked by holding a creator token
type Perk struct {
	ID                 uuid.UUID       `gorm:"column:id;primaryKey;type:uuid"`
	CreatorID          uuid.UUID       `gorm:"column:creator_id;not null;type:uuid"`
	TokenID            *uuid.UUID      `gorm:"column:token_id;type:uuid;index"`
	Title              string          `gorm:"column:title;not null;type:varchar(255)"`
	Description        string          `gorm:"column:description;not null;type:text"`
	Type               domain.PerkType `gorm:"column:type;not null;type:varchar(50)"`
	IsActive           bool            `gorm:"column:is_active;not null;default:true"`
	MinTokensRequired  *string         `gorm:"column:min_tokens_required;type:numeric(78,0)"`
	MaxRedemptions     *int            `gorm:"column:max_redemptions"`
	CurrentRedemptions int             `gorm:"column:current_redemptions;not null;default:0"`
	ImageURL           *string         `gorm:"column:image_url;type:text"`
	Metadata           datatypes.JSON  `gorm:"column:metadata;type:jsonb"`
	CreatedAt          time.Time       `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Perk model
func (Perk) TableName() string {
	return "perks"
}

// PerkRedemption represents the perk_redemptions table
type PerkRedemption struct {
	ID         uuid.UUID               `gorm:"column:id;primaryKey;type:uuid"`
	UserID     uuid.UUID               `gorm:"column:user_id;not null;type:uuid;index"`
	PerkID     uuid.UUID               `gorm:"column:perk_id;not null;type:uuid;index"`
	Status     domain.RedemptionStatus `gorm:"column:status;not null;default:PENDING;type:varchar(20)"`
	RedeemedAt *time.Time              `gorm:"column:redeemed_at;type:timestamptz"`
	ExpiresAt  *time.Time              `gorm:"column:expires_at;type:timestamptz"`
	Metadata   datatypes.JSON          `gorm:"column:metadata;type:jsonb"`
	CreatedAt  time.Time               `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt  time.Time               `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the PerkRedemption model
func (PerkRedemption) TableName() string {
	return "perk_redemptions"
}
