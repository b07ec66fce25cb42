package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,CursorStore=MockCursorStore

// CursorStore defines the interface for storing and retrieving block cursors
type CursorStore interface {
	// GetBlockCursor retrieves the last processed block number for a chain
	GetBlockCursor(ctx context.Context, chain string) (uint64, error)
	// SetBlockCursor stores the last processed block number for a chain
	SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error
}

// Store defines the interface for database operations.
// Getters return (nil, nil) when the row does not exist.
type Store interface {
	CursorStore

	// InsertBlockchainEvent inserts the event unless (transaction_hash, log_index) already exists.
	// The returned bool is false for duplicates, in which case the row is nil.
	InsertBlockchainEvent(ctx context.Context, event schema.BlockchainEvent) (*schema.BlockchainEvent, bool, error)
	// MarkBlockchainEventProcessed flags the event as handled
	MarkBlockchainEventProcessed(ctx context.Context, id uuid.UUID) error
	// RecordBlockchainEventFailure increments the attempt counter and stores the error message
	RecordBlockchainEventFailure(ctx context.Context, id uuid.UUID, errMsg string) error
	// GetUnprocessedBlockchainEvents returns up to limit unprocessed events, oldest first.
	// A positive maxAttempts excludes events that already failed that many times.
	GetUnprocessedBlockchainEvents(ctx context.Context, limit int, maxAttempts int) ([]schema.BlockchainEvent, error)
	// GetBlockchainEvents lists events matching the filter, newest first, with the total count
	GetBlockchainEvents(ctx context.Context, filter BlockchainEventFilter) ([]schema.BlockchainEvent, uint64, error)

	// CreateUser creates a user and, for creators, the creator profile
	CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error)
	// GetUserByID retrieves a user with its creator profile
	GetUserByID(ctx context.Context, id uuid.UUID) (*schema.User, error)
	// CreateWallet registers a wallet address for a user
	CreateWallet(ctx context.Context, input CreateWalletInput) (*schema.Wallet, error)
	// GetWalletByID retrieves a wallet by id
	GetWalletByID(ctx context.Context, id uuid.UUID) (*schema.Wallet, error)
	// GetWalletByAddress retrieves a wallet by its normalized address
	GetWalletByAddress(ctx context.Context, address string) (*schema.Wallet, error)
	// GetLatestWalletByUserID retrieves the most recently created wallet of a user
	GetLatestWalletByUserID(ctx context.Context, userID uuid.UUID) (*schema.Wallet, error)

	// CreateToken creates a creator token together with its default perks
	CreateToken(ctx context.Context, input CreateTokenInput) (*schema.CreatorToken, error)
	// GetTokenByID retrieves a token by id
	GetTokenByID(ctx context.Context, id uuid.UUID) (*schema.CreatorToken, error)
	// GetTokenByContractAddress retrieves a deployed token by contract address
	GetTokenByContractAddress(ctx context.Context, contractAddress string) (*schema.CreatorToken, error)
	// GetTokens lists tokens matching the filter with the total count
	GetTokens(ctx context.Context, filter TokenFilter) ([]schema.CreatorToken, uint64, error)
	// MarkTokenDeployed records the contract address and deployment transaction of a token
	MarkTokenDeployed(ctx context.Context, tokenID uuid.UUID, contractAddress string, txHash string) error
	// SetTokenPriceByContract sets current_price on every token with the contract address and returns the number updated
	SetTokenPriceByContract(ctx context.Context, contractAddress string, price string) (int64, error)
	// UpdateTokenStats overwrites the derived statistics of a token
	UpdateTokenStats(ctx context.Context, tokenID uuid.UUID, stats TokenStatsInput) error
	// GetDeployedTokenIDs lists the ids of every deployed token
	GetDeployedTokenIDs(ctx context.Context) ([]uuid.UUID, error)
	// GetDeployedContractAddresses lists the contract address of every deployed token
	GetDeployedContractAddresses(ctx context.Context) ([]string, error)

	// CountActiveHoldings counts active holdings of a token
	CountActiveHoldings(ctx context.Context, tokenID uuid.UUID) (int64, error)
	// SumConfirmedVolume sums total_value over confirmed transactions of a token
	SumConfirmedVolume(ctx context.Context, tokenID uuid.UUID) (string, error)
	// GetRecentConfirmedPrices returns the prices of the most recent confirmed transactions with a positive price,
	// ordered by created_at then id, newest first
	GetRecentConfirmedPrices(ctx context.Context, tokenID uuid.UUID, limit int) ([]string, error)

	// GetHolding retrieves the holding of a user for a token
	GetHolding(ctx context.Context, userID, tokenID uuid.UUID) (*schema.TokenHolding, error)
	// GetHoldingsByUserID lists the holdings of a user
	GetHoldingsByUserID(ctx context.Context, userID uuid.UUID) ([]schema.TokenHolding, error)
	// MutateHoldings applies every mutation in a single database transaction,
	// each one against its holding row locked for update
	MutateHoldings(ctx context.Context, mutations ...HoldingMutation) error
	// ApplyTransactionHoldings flags the transaction's trade as applied and runs the
	// mutations in the same database transaction. It returns false without mutating
	// anything when the trade was already applied.
	ApplyTransactionHoldings(ctx context.Context, transactionID uuid.UUID, mutations ...HoldingMutation) (bool, error)

	// CreateTransaction records a transaction. When TxHash is set and already recorded,
	// the existing row is returned with created=false.
	CreateTransaction(ctx context.Context, input CreateTransactionInput) (*schema.Transaction, bool, error)
	// GetTransactionByID retrieves a transaction by id
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*schema.Transaction, error)
	// GetTransactions lists transactions matching the filter, newest first, with the total count
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]schema.Transaction, uint64, error)
	// UpdateTransaction applies a status change and chain details to a transaction
	UpdateTransaction(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*schema.Transaction, error)
	// RecordGasPayment stores the gas cost of a transaction and copies gas details onto it
	RecordGasPayment(ctx context.Context, input RecordGasPaymentInput) (*schema.GasPayment, error)

	// CreatePerk creates a perk for a token
	CreatePerk(ctx context.Context, input CreatePerkInput) (*schema.Perk, error)
	// GetPerkByID retrieves a perk by id
	GetPerkByID(ctx context.Context, id uuid.UUID) (*schema.Perk, error)
	// GetPerksByTokenID lists the perks of a token
	GetPerksByTokenID(ctx context.Context, tokenID uuid.UUID) ([]schema.Perk, error)
	// CreatePerkRedemption records a redemption and increments the perk's redemption counter atomically
	CreatePerkRedemption(ctx context.Context, input CreatePerkRedemptionInput) (*schema.PerkRedemption, error)

	// CreateNotification stores a notification
	CreateNotification(ctx context.Context, input CreateNotificationInput) (*schema.Notification, error)
	// GetNotificationsByUserID lists notifications of a user, newest first, with the total count
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int, offset uint64) ([]schema.Notification, uint64, error)
	// MarkNotificationRead flags a notification as read
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}

// BlockchainEventFilter filters blockchain events
type BlockchainEventFilter struct {
	ContractAddress string
	EventType       string
	Processed       *bool
	Limit           int
	Offset          uint64
}

// CreateUserInput represents the input for creating a user
type CreateUserInput struct {
	Email       string
	Username    string
	DisplayName string
	Bio         *string
	AvatarURL   *string
	IsCreator   bool
}

// CreateWalletInput represents the input for registering a wallet
type CreateWalletInput struct {
	UserID      uuid.UUID
	Address     string
	WalletType  domain.WalletType
	IsCustodial bool
	ChainID     int
	NetworkName string
}

// CreatePerkInput represents the input for creating a perk
type CreatePerkInput struct {
	CreatorID         uuid.UUID
	TokenID           *uuid.UUID
	Title             string
	Description       string
	Type              domain.PerkType
	MinTokensRequired *string
	MaxRedemptions    *int
	ImageURL          *string
}

// CreateTokenInput represents the input for creating a creator token
type CreateTokenInput struct {
	CreatorID       uuid.UUID
	Name            string
	Symbol          string
	Description     *string
	ImageURL        *string
	TotalSupply     string
	StartingPrice   string
	MaxTokensPerFan string
	// Perks are created in the same transaction with TokenID and CreatorID filled in
	Perks []CreatePerkInput
}

// TokenFilter filters creator tokens
type TokenFilter struct {
	CreatorID *uuid.UUID
	Deployed  *bool
	Limit     int
	Offset    uint64
}

// TokenStatsInput holds the derived statistics written by the aggregator
type TokenStatsInput struct {
	TotalHolders int64
	TotalVolume  string
	FloorPrice   string
}

// HoldingAction is the outcome of a holding mutation
type HoldingAction int

const (
	// HoldingActionNone leaves the holding unchanged
	HoldingActionNone HoldingAction = iota
	// HoldingActionCreate inserts a new holding
	HoldingActionCreate
	// HoldingActionUpdate overwrites balance, average price and total invested
	HoldingActionUpdate
	// HoldingActionDelete removes the holding
	HoldingActionDelete
)

// HoldingChange is what a HoldingMutator asks the store to do
type HoldingChange struct {
	Action  HoldingAction
	Holding *schema.TokenHolding
}

// HoldingMutator computes the change for a holding. current is nil when the
// user holds none of the token. It may run more than once if a concurrent
// writer creates the row first.
type HoldingMutator func(current *schema.TokenHolding) (HoldingChange, error)

// HoldingMutation binds a mutator to the (user, token) holding it applies to
type HoldingMutation struct {
	UserID  uuid.UUID
	TokenID uuid.UUID
	Mutate  HoldingMutator
}

// CreateTransactionInput represents the input for recording a transaction
type CreateTransactionInput struct {
	UserID      uuid.UUID
	WalletID    uuid.UUID
	TokenID     *uuid.UUID
	Type        domain.TransactionType
	Amount      string
	Price       *string
	TotalValue  string
	TxHash      *string
	BlockNumber *string
	Status      domain.TransactionStatus
	Description *string
	Metadata    datatypes.JSON
}

// TransactionFilter filters transactions
type TransactionFilter struct {
	UserID  *uuid.UUID
	TokenID *uuid.UUID
	Type    *domain.TransactionType
	Status  *domain.TransactionStatus
	Limit   int
	Offset  uint64
}

// UpdateTransactionInput represents a partial update of a transaction
type UpdateTransactionInput struct {
	// ExpectedStatus rejects the update with a conflict unless the row still has this status
	ExpectedStatus *domain.TransactionStatus
	Status         *domain.TransactionStatus
	TxHash         *string
	BlockNumber    *string
	GasUsed        *string
	GasPrice       *string
}

// RecordGasPaymentInput represents the gas paid for a transaction
type RecordGasPaymentInput struct {
	TransactionID uuid.UUID
	TxHash        string
	GasUsed       string
	GasPrice      string
	PaidBy        string
	TokenAddress  *string
}

// CreatePerkRedemptionInput represents the input for redeeming a perk
type CreatePerkRedemptionInput struct {
	UserID     uuid.UUID
	PerkID     uuid.UUID
	Status     domain.RedemptionStatus
	RedeemedAt *time.Time
	// EnforceLimit rejects the redemption once max_redemptions is reached
	EnforceLimit bool
}

// CreateNotificationInput represents the input for storing a notification
type CreateNotificationInput struct {
	UserID    uuid.UUID
	Type      domain.NotificationType
	Title     string
	Message   string
	Data      datatypes.JSON
	ActionURL *string
}
