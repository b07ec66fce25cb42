package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GasPayment represents the gas_payments table - gas the platform wallet paid on behalf of users
type GasPayment struct {
	ID              uuid.UUID      `gorm:"column:id;primaryKey;type:uuid"`
	TransactionHash string         `gorm:"column:transaction_hash;not null;type:varchar(66);uniqueIndex"`
	Amount          string         `gorm:"column:amount;not null;type:numeric(78,0)"`
	TokenAddress    *string        `gorm:"column:token_address;type:varchar(42)"`
	PaidBy          string         `gorm:"column:paid_by;not null;type:varchar(42)"`
	Metadata        datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	CreatedAt       time.Time      `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the GasPayment model
func (GasPayment) TableName() string {
	return "gas_payments"
}
