package holdings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
	"github.com/inorbyt/chain-sync/internal/types"
)

//go:generate mockgen -source=holdings.go -destination=../mocks/holdings.go -package=mocks -mock_names=Updater=MockHoldingsUpdater

// Trade is a purchase or sale recorded on the platform
type Trade struct {
	// TransactionID is the recorded transaction the trade belongs to. When set,
	// the trade moves the holding at most once.
	TransactionID uuid.UUID
	UserID        uuid.UUID
	TokenID       uuid.UUID
	Type          domain.TransactionType
	Amount        string
	Price         *string
	TotalValue    string
}

// Transfer moves a token balance between two wallets.
// From is nil for mints and To is nil for burns.
type Transfer struct {
	TokenID uuid.UUID
	From    *schema.Wallet
	To      *schema.Wallet
	Value   string
}

// Updater applies balance deltas to token holdings
type Updater interface {
	// ApplyTrade applies a purchase or sale to the trader's holding
	ApplyTrade(ctx context.Context, trade Trade) error
	// ApplyTransfer moves value from the sender's holding to the receiver's in one database transaction
	ApplyTransfer(ctx context.Context, transfer Transfer) error
}

type updater struct {
	store store.Store
}

// NewUpdater creates a new holdings updater
func NewUpdater(store store.Store) Updater {
	return &updater{store: store}
}

// ApplyTrade applies a purchase or sale to the trader's holding.
// New holdings are attached to the user's most recently created wallet.
func (u *updater) ApplyTrade(ctx context.Context, trade Trade) error {
	if !trade.Type.IsTrade() {
		return fmt.Errorf("%w: %s does not change holdings", domain.ErrInvalidTransactionType, trade.Type)
	}
	if err := validateAmount(trade.Amount); err != nil {
		return fmt.Errorf("amount: %w", err)
	}

	var mutate store.HoldingMutator
	switch trade.Type {
	case domain.TransactionTypeTokenPurchase:
		// only a purchase can create the holding, so only it needs a wallet
		wallet, err := u.store.GetLatestWalletByUserID(ctx, trade.UserID)
		if err != nil {
			return fmt.Errorf("failed to get wallet: %w", err)
		}
		if wallet == nil {
			return fmt.Errorf("%w: user %s", domain.ErrWalletNotFound, trade.UserID)
		}
		mutate = purchase(wallet.ID, trade.Amount, trade.Price, trade.TotalValue)
	case domain.TransactionTypeTokenSale:
		mutate = decrease(trade.Amount)
	}

	mutation := store.HoldingMutation{
		UserID:  trade.UserID,
		TokenID: trade.TokenID,
		Mutate:  mutate,
	}

	if trade.TransactionID == uuid.Nil {
		if err := u.store.MutateHoldings(ctx, mutation); err != nil {
			return fmt.Errorf("failed to apply %s: %w", trade.Type, err)
		}
	} else {
		applied, err := u.store.ApplyTransactionHoldings(ctx, trade.TransactionID, mutation)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", trade.Type, err)
		}
		if !applied {
			logger.DebugCtx(ctx, "Trade already applied to holding",
				zap.String("transaction_id", trade.TransactionID.String()))
			return nil
		}
	}

	logger.DebugCtx(ctx, "Applied trade to holding",
		zap.String("user_id", trade.UserID.String()),
		zap.String("token_id", trade.TokenID.String()),
		zap.String("type", string(trade.Type)),
		zap.String("amount", trade.Amount))

	return nil
}

// ApplyTransfer moves value from the sender's holding to the receiver's
func (u *updater) ApplyTransfer(ctx context.Context, transfer Transfer) error {
	if err := validateAmount(transfer.Value); err != nil {
		return fmt.Errorf("value: %w", err)
	}

	// a transfer between wallets of the same user leaves the holding unchanged
	if transfer.From != nil && transfer.To != nil && transfer.From.UserID == transfer.To.UserID {
		return nil
	}

	var mutations []store.HoldingMutation
	if transfer.From != nil {
		mutations = append(mutations, store.HoldingMutation{
			UserID:  transfer.From.UserID,
			TokenID: transfer.TokenID,
			Mutate:  decrease(transfer.Value),
		})
	}
	if transfer.To != nil {
		mutations = append(mutations, store.HoldingMutation{
			UserID:  transfer.To.UserID,
			TokenID: transfer.TokenID,
			Mutate:  receive(transfer.To.ID, transfer.Value),
		})
	}
	if len(mutations) == 0 {
		return nil
	}

	if err := u.store.MutateHoldings(ctx, mutations...); err != nil {
		return fmt.Errorf("failed to apply transfer: %w", err)
	}

	return nil
}

func validateAmount(s string) error {
	v, err := types.ParseNumeric(s)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	if v.Sign() < 0 {
		return fmt.Errorf("%w: %s is negative", domain.ErrInvalidAmount, s)
	}
	return nil
}
