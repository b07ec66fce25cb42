package executor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/aggregator"
	"github.com/inorbyt/chain-sync/internal/api/shared/dto"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/notifier"
	"github.com/inorbyt/chain-sync/internal/store"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// IngestEvent stores and handles a single chain event.
	// A stored event whose handler failed is returned with status failed and the error message.
	IngestEvent(ctx context.Context, event domain.ChainEvent) (*dto.IngestEventResponse, error)
	// ProcessEventBatch ingests events independently of each other
	ProcessEventBatch(ctx context.Context, events []domain.ChainEvent) (*dto.BatchEventsResponse, error)
	// ListEvents lists stored chain events, newest first
	ListEvents(ctx context.Context, filter store.BlockchainEventFilter) (*dto.EventListResponse, error)
	// RecoverEvents retries unprocessed events
	RecoverEvents(ctx context.Context) (*dto.RecoveryResponse, error)
	// RecomputeTokenStats recomputes the derived statistics of a token
	RecomputeTokenStats(ctx context.Context, tokenID uuid.UUID) (*dto.TokenStatsResponse, error)

	// CreateUser creates a user and sends the welcome notification
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	// GetUser retrieves a user, nil if it does not exist
	GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	// ConnectWallet registers a wallet for a user
	ConnectWallet(ctx context.Context, userID uuid.UUID, req dto.ConnectWalletRequest) (*dto.WalletResponse, error)
	// GetUserHoldings lists the token holdings of a user
	GetUserHoldings(ctx context.Context, userID uuid.UUID) (*dto.HoldingListResponse, error)
	// GetUserNotifications lists the notifications of a user, newest first
	GetUserNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int, offset uint64) (*dto.NotificationListResponse, error)
	// MarkNotificationRead flags a notification as read
	MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) error

	// CreateToken creates a creator token with its default perks
	CreateToken(ctx context.Context, req dto.CreateTokenRequest) (*dto.TokenResponse, error)
	// GetToken retrieves a token, nil if it does not exist
	GetToken(ctx context.Context, tokenID uuid.UUID) (*dto.TokenResponse, error)
	// ListTokens lists tokens matching the filter
	ListTokens(ctx context.Context, filter store.TokenFilter) (*dto.TokenListResponse, error)
	// DeployToken records the deployment of a token through the event pipeline
	DeployToken(ctx context.Context, tokenID uuid.UUID, req dto.DeployTokenRequest) (*dto.TokenResponse, error)
	// GetTokenPerks lists the perks of a token
	GetTokenPerks(ctx context.Context, tokenID uuid.UUID) (*dto.PerkListResponse, error)
	// CreatePerk adds a perk to a token
	CreatePerk(ctx context.Context, tokenID uuid.UUID, req dto.CreatePerkRequest) (*dto.PerkResponse, error)
	// RedeemPerk redeems a perk for a user after checking eligibility
	RedeemPerk(ctx context.Context, perkID uuid.UUID, req dto.RedeemPerkRequest) (*dto.PerkRedemptionResponse, error)

	// CreateTransaction records a platform transaction and applies its effects
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	// ListTransactions lists transactions matching the filter, newest first
	ListTransactions(ctx context.Context, filter store.TransactionFilter) (*dto.TransactionListResponse, error)
	// UpdateTransaction applies a status change or chain details to a transaction
	UpdateTransaction(ctx context.Context, transactionID uuid.UUID, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	// RecordGasPayment tracks the gas the platform wallet paid for a transaction
	RecordGasPayment(ctx context.Context, transactionID uuid.UUID, req dto.RecordGasPaymentRequest) (*dto.GasPaymentResponse, error)
}

// Config holds executor configuration
type Config struct {
	// PlatformWalletAddress is recorded as the payer of gas payments
	PlatformWalletAddress string
	// Chain is attached to events the API synthesizes, such as token deployments
	Chain domain.Chain
}

type executor struct {
	config     Config
	store      store.Store
	ingestor   ingestor.Ingestor
	holdings   holdings.Updater
	aggregator aggregator.Aggregator
	notifier   notifier.Notifier
}

// NewExecutor creates the API executor
func NewExecutor(
	cfg Config,
	st store.Store,
	ing ingestor.Ingestor,
	holdingsUpdater holdings.Updater,
	agg aggregator.Aggregator,
	n notifier.Notifier,
) Executor {
	return &executor{
		config:     cfg,
		store:      st,
		ingestor:   ing,
		holdings:   holdingsUpdater,
		aggregator: agg,
		notifier:   n,
	}
}

func (e *executor) IngestEvent(ctx context.Context, event domain.ChainEvent) (*dto.IngestEventResponse, error) {
	result, err := e.ingestor.Ingest(ctx, event)
	if err != nil && !result.Stored() {
		return nil, err
	}

	resp := &dto.IngestEventResponse{
		Status:  result.Status,
		EventID: result.EventID,
		Key:     result.Key,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	return resp, nil
}

func (e *executor) ProcessEventBatch(ctx context.Context, events []domain.ChainEvent) (*dto.BatchEventsResponse, error) {
	result := e.ingestor.ProcessBatch(ctx, events)

	return &dto.BatchEventsResponse{
		Message:    "Batch processing completed",
		Successful: result.Successful,
		Failed:     result.Failed,
	}, nil
}

func (e *executor) ListEvents(ctx context.Context, filter store.BlockchainEventFilter) (*dto.EventListResponse, error) {
	if filter.ContractAddress != "" {
		if !domain.IsValidAddress(filter.ContractAddress) {
			return nil, fmt.Errorf("%w: contract_address %q", domain.ErrInvalidAddress, filter.ContractAddress)
		}
		filter.ContractAddress = domain.NormalizeAddress(filter.ContractAddress)
	}

	events, total, err := e.store.GetBlockchainEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get blockchain events: %w", err)
	}

	resp := &dto.EventListResponse{
		Events:     make([]dto.EventResponse, 0, len(events)),
		Pagination: dto.NewPagination(total, filter.Limit, filter.Offset),
	}
	for i := range events {
		resp.Events = append(resp.Events, *dto.MapEventToDTO(&events[i]))
	}

	return resp, nil
}

func (e *executor) RecoverEvents(ctx context.Context) (*dto.RecoveryResponse, error) {
	result, err := e.ingestor.RecoverFailedEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to recover events: %w", err)
	}

	return &dto.RecoveryResponse{
		Scanned:   result.Scanned,
		Recovered: result.Recovered,
		Failed:    result.Failed,
	}, nil
}

func (e *executor) RecomputeTokenStats(ctx context.Context, tokenID uuid.UUID) (*dto.TokenStatsResponse, error) {
	stats, err := e.aggregator.Recompute(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	return dto.MapTokenStatsToDTO(stats), nil
}

// recompute refreshes token stats after a committed change; the reconcile sweeper repairs failures
func (e *executor) recompute(ctx context.Context, tokenID uuid.UUID) {
	if _, err := e.aggregator.Recompute(ctx, tokenID); err != nil {
		logger.WarnCtx(ctx, "Failed to recompute token stats",
			zap.Error(err),
			zap.String("token_id", tokenID.String()))
	}
}

// notify stores and publishes a notification. Failures never fail the request.
func (e *executor) notify(ctx context.Context, notification domain.Notification) {
	if e.notifier == nil {
		return
	}
	if _, err := e.notifier.Notify(ctx, notification); err != nil {
		logger.WarnCtx(ctx, "Failed to send notification",
			zap.Error(err),
			zap.String("user_id", notification.UserID),
			zap.String("type", string(notification.Type)))
	}
}

func parseID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q is not a uuid", domain.ErrValidation, name, value)
	}
	return id, nil
}
