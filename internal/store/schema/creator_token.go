package schema

import (
	"time"

	"github.com/google/uuid"
)

// CreatorToken represents the creator_tokens table - one fungible token per creator
type CreatorToken struct {
	// ID is the primary key
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// CreatorID references the creator profile that owns the token
	CreatorID uuid.UUID `gorm:"column:creator_id;not null;type:uuid;index"`
	// Name is the display name of the token
	Name string `gorm:"column:name;not null;type:varchar(255)"`
	// Symbol is the ticker, unique across the platform
	Symbol string `gorm:"column:symbol;not null;type:varchar(10);uniqueIndex"`
	// Description is free text shown to fans
	Description *string `gorm:"column:description;type:text"`
	// ImageURL is the token artwork
	ImageURL *string `gorm:"column:image_url;type:text"`
	// TotalSupply is the maximum mintable supply
	TotalSupply string `gorm:"column:total_supply;not null;default:1000000;type:numeric(78,0)"`
	// CurrentSupply is the minted supply
	CurrentSupply string `gorm:"column:current_supply;not null;default:0;type:numeric(78,0)"`
	// StartingPrice is the launch price and the floor price fallback
	StartingPrice string `gorm:"column:starting_price;not null;type:numeric(78,0)"`
	// CurrentPrice is the last price reported by the contract
	CurrentPrice *string `gorm:"column:current_price;type:numeric(78,0)"`
	// MaxTokensPerFan caps the balance of a single holder
	MaxTokensPerFan string `gorm:"column:max_tokens_per_fan;not null;default:1000;type:numeric(78,0)"`
	// ContractAddress is set once the token is deployed
	ContractAddress *string `gorm:"column:contract_address;type:varchar(42);uniqueIndex"`
	// DeploymentTxHash is the hash of the deployment transaction
	DeploymentTxHash *string `gorm:"column:deployment_tx_hash;type:varchar(66)"`
	// IsDeployed indicates whether the contract exists on chain
	IsDeployed bool `gorm:"column:is_deployed;not null;default:false"`
	// TotalHolders is derived: the number of active holdings
	TotalHolders int `gorm:"column:total_holders;not null;default:0"`
	// TotalVolume is derived: the sum of total_value over confirmed transactions
	TotalVolume string `gorm:"column:total_volume;not null;default:0;type:numeric(78,0)"`
	// FloorPrice is derived: the mean price of the most recent priced confirmed transactions
	FloorPrice string `gorm:"column:floor_price;not null;default:0;type:numeric(78,0)"`
	// CreatedAt is the timestamp when the token was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the token was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Perks []Perk `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CreatorToken model
func (CreatorToken) TableName() string {
	return "creator_tokens"
}
