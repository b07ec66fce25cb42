package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlockchainEvent represents the blockchain_events table - the durable log of every chain event received
type BlockchainEvent struct {
	// ID is the primary key, a time-ordered UUIDv7 generated on insert
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// EventType is the event name (TokenTransfer, TokenPurchase, PerkRedeemed, PriceUpdate, TokenDeployed or any unhandled name)
	EventType string `gorm:"column:event_type;not null;type:varchar(100)"`
	// ContractAddress is the lowercase hex address of the emitting contract
	ContractAddress string `gorm:"column:contract_address;not null;type:varchar(42);index:idx_blockchain_events_contract"`
	// BlockNumber is the block the log was included in
	BlockNumber string `gorm:"column:block_number;not null;type:numeric(78,0)"`
	// TransactionHash together with LogIndex identifies the log uniquely
	TransactionHash string `gorm:"column:transaction_hash;not null;type:varchar(66);uniqueIndex:idx_blockchain_events_tx_log,priority:1"`
	// LogIndex is the position of the log within the transaction receipt
	LogIndex int `gorm:"column:log_index;not null;uniqueIndex:idx_blockchain_events_tx_log,priority:2"`
	// Data is the decoded event payload
	Data datatypes.JSON `gorm:"column:data;not null;type:jsonb"`
	// Processed is set once the handler succeeded
	Processed bool `gorm:"column:processed;not null;default:false;index:idx_blockchain_events_unprocessed,priority:1"`
	// Attempts counts failed handler runs
	Attempts int `gorm:"column:attempts;not null;default:0"`
	// LastError holds the message of the most recent handler failure
	LastError *string `gorm:"column:last_error;type:text"`
	// ProcessedAt is when the handler succeeded
	ProcessedAt *time.Time `gorm:"column:processed_at;type:timestamptz"`
	// CreatedAt is when the event was first received
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_blockchain_events_unprocessed,priority:2"`
	// UpdatedAt is when the row was last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BlockchainEvent model
func (BlockchainEvent) TableName() string {
	return "blockchain_events"
}
