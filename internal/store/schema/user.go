package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/domain"
)

// User represents the users table
type User struct {
	ID          uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	Email       string    `gorm:"column:email;not null;type:varchar(255);uniqueIndex"`
	DisplayName string    `gorm:"column:display_name;not null;type:varchar(255)"`
	Username    string    `gorm:"column:username;not null;type:varchar(50);uniqueIndex"`
	Bio         *string   `gorm:"column:bio;type:text"`
	AvatarURL   *string   `gorm:"column:avatar_url;type:text"`
	IsCreator   bool      `gorm:"column:is_creator;not null;default:false"`
	IsVerified  bool      `gorm:"column:is_verified;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	CreatorProfile *CreatorProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Wallets        []Wallet        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// CreatorProfile represents the creator_profiles table, one row per creator user
type CreatorProfile struct {
	ID              uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	UserID          uuid.UUID `gorm:"column:user_id;not null;type:uuid;uniqueIndex"`
	TwitterHandle   *string   `gorm:"column:twitter_handle;type:varchar(255)"`
	InstagramHandle *string   `gorm:"column:instagram_handle;type:varchar(255)"`
	YoutubeChannel  *string   `gorm:"column:youtube_channel;type:varchar(255)"`
	Website         *string   `gorm:"column:website;type:text"`
	TotalFollowers  int       `gorm:"column:total_followers;not null;default:0"`
	IsPublic        bool      `gorm:"column:is_public;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CreatorProfile model
func (CreatorProfile) TableName() string {
	return "creator_profiles"
}

// Wallet represents the wallets table. Address is stored lowercase.
type Wallet struct {
	ID          uuid.UUID         `gorm:"column:id;primaryKey;type:uuid"`
	UserID      uuid.UUID         `gorm:"column:user_id;not null;type:uuid;index"`
	Address     string            `gorm:"column:address;not null;type:varchar(42);uniqueIndex"`
	WalletType  domain.WalletType `gorm:"column:wallet_type;not null;type:varchar(50)"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	IsCustodial bool              `gorm:"column:is_custodial;not null;default:false"`
	ChainID     int               `gorm:"column:chain_id;not null;default:8453"`
	NetworkName string            `gorm:"column:network_name;not null;default:base;type:varchar(50)"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Wallet model
func (Wallet) TableName() string {
	return "wallets"
}
