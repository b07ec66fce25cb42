package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/inorbyt/chain-sync/internal/domain"
)

// Transaction represents the transactions table - platform-level value movements
type Transaction struct {
	// ID is the primary key
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// UserID references the user who initiated the transaction
	UserID uuid.UUID `gorm:"column:user_id;not null;type:uuid;index"`
	// WalletID references the wallet used
	WalletID uuid.UUID `gorm:"column:wallet_id;not null;type:uuid"`
	// TokenID references the creator token, nil for non-token movements
	TokenID *uuid.UUID `gorm:"column:token_id;type:uuid;index:idx_transactions_token_status,priority:1"`
	// Type is the kind of movement
	Type domain.TransactionType `gorm:"column:type;not null;type:varchar(50)"`
	// Amount is the token quantity
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// Price is the unit price, nil when not applicable
	Price *string `gorm:"column:price;type:numeric(78,0)"`
	// TotalValue is the value moved
	TotalValue string `gorm:"column:total_value;not null;type:numeric(78,0)"`
	// TxHash is the on-chain transaction hash, unique when set
	TxHash *string `gorm:"column:tx_hash;type:varchar(66);uniqueIndex"`
	// BlockNumber is the block the transaction was mined in
	BlockNumber *string `gorm:"column:block_number;type:numeric(78,0)"`
	// GasUsed and GasPrice are copied from the receipt
	GasUsed  *string `gorm:"column:gas_used;type:numeric(78,0)"`
	GasPrice *string `gorm:"column:gas_price;type:numeric(78,0)"`
	// Status moves from PENDING to one of CONFIRMED, FAILED or CANCELLED
	Status domain.TransactionStatus `gorm:"column:status;not null;default:PENDING;type:varchar(20);index:idx_transactions_token_status,priority:2"`
	// HoldingsApplied is set once the trade has moved the trader's holding
	HoldingsApplied bool `gorm:"column:holdings_applied;not null;default:false"`
	// Description is free text
	Description *string `gorm:"column:description;type:text"`
	// Metadata holds client supplied context
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// CreatedAt is the timestamp when the transaction was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the transaction was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
