package schema

import (
	"time"

	"github.com/google/uuid"
)

// TokenHolding represents the token_holdings table - a user's balance of one creator token.
// A row whose balance would drop to zero or below is deleted instead.
type TokenHolding struct {
	ID            uuid.UUID  `gorm:"column:id;primaryKey;type:uuid"`
	UserID        uuid.UUID  `gorm:"column:user_id;not null;type:uuid;uniqueIndex:idx_token_holdings_user_token,priority:1"`
	WalletID      uuid.UUID  `gorm:"column:wallet_id;not null;type:uuid"`
	TokenID       uuid.UUID  `gorm:"column:token_id;not null;type:uuid;uniqueIndex:idx_token_holdings_user_token,priority:2;index"`
	Balance       string     `gorm:"column:balance;not null;type:numeric(78,0)"`
	AveragePrice  string     `gorm:"column:average_price;not null;type:numeric(78,0)"`
	TotalInvested string     `gorm:"column:total_invested;not null;type:numeric(78,0)"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true"`
	LastSyncedAt  *time.Time `gorm:"column:last_synced_at;type:timestamptz"`
	CreatedAt     time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TokenHolding model
func (TokenHolding) TableName() string {
	return "token_holdings"
}
