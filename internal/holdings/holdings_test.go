package holdings_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/logger"
	mockspkg "github.com/inorbyt/chain-sync/internal/mocks"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testHoldingsMocks struct {
	ctrl    *gomock.Controller
	store   *mockspkg.MockStore
	updater holdings.Updater
}

func setupTestHoldings(t *testing.T) *testHoldingsMocks {
	ctrl := gomock.NewController(t)
	st := mockspkg.NewMockStore(ctrl)
	return &testHoldingsMocks{
		ctrl:    ctrl,
		store:   st,
		updater: holdings.NewUpdater(st),
	}
}

// applyAgainst runs every captured mutation against the holding found in
// current, keyed by user id, and records the resulting changes.
func applyAgainst(current map[uuid.UUID]*schema.TokenHolding, changes map[uuid.UUID]store.HoldingChange) func(context.Context, ...store.HoldingMutation) error {
	return func(_ context.Context, mutations ...store.HoldingMutation) error {
		for _, m := range mutations {
			change, err := m.Mutate(current[m.UserID])
			if err != nil {
				return err
			}
			changes[m.UserID] = change
		}
		return nil
	}
}

func TestUpdater_ApplyTrade_FirstPurchase(t *testing.T) {
	mocks := setupTestHoldings(t)
	defer mocks.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	tokenID := uuid.New()
	wallet := &schema.Wallet{ID: uuid.New(), UserID: userID}
	price := "2000000000000000"

	changes := map[uuid.UUID]store.HoldingChange{}
	mocks.store.EXPECT().GetLatestWalletByUserID(ctx, userID).Return(wallet, nil)
	mocks.store.EXPECT().MutateHoldings(ctx, gomock.Any()).DoAndReturn(applyAgainst(map[uuid.UUID]*schema.TokenHolding{}, changes))

	err := mocks.updater.ApplyTrade(ctx, holdings.Trade{
		UserID:     userID,
		TokenID:    tokenID,
		Type:       domain.TransactionTypeTokenPurchase,
		Amount:     "10",
		Price:      &price,
		TotalValue: "20000000000000000",
	})
	require.NoError(t, err)

	change := changes[userID]
	assert.Equal(t, store.HoldingActionCreate, change.Action)
	assert.Equal(t, wallet.ID, change.Holding.WalletID)
	assert.Equal(t, "10", change.Holding.Balance)
	assert.Equal(t, price, change.Holding.AveragePrice)
	assert.Equal(t, "20000000000000000", change.Holding.TotalInvested)
}

func TestUpdater_ApplyTrade_AdditionalPurchase(t *testing.T) {
	mocks := setupTestHoldings(t)
	defer mocks.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	price := "40"

	current := map[uuid.UUID]*schema.TokenHolding{
		userID: {Balance: "10", AveragePrice: "20", TotalInvested: "200"},
	}
	changes := map[uuid.UUID]store.HoldingChange{}
	mocks.store.EXPECT().GetLatestWalletByUserID(ctx, userID).Return(&schema.Wallet{ID: uuid.New(), UserID: userID}, nil)
	mocks.store.EXPECT().MutateHoldings(ctx, gomock.Any()).DoAndReturn(applyAgainst(current, changes))

	err := mocks.updater.ApplyTrade(ctx, holdings.Trade{
		UserID:     userID,
		TokenID:    uuid.New(),
		Type:       domain.TransactionTypeTokenPurchase,
		Amount:     "5",
		Price:      &price,
		TotalValue: "200",
	})
	require.NoError(t, err)

	change := changes[userID]
	assert.Equal(t, store.HoldingActionUpdate, change.Action)
	assert.Equal(t, "15", change.Holding.Balance)
	assert.Equal(t, "400", change.Holding.TotalInvested)
	// 400 / 15 truncates
	assert.Equal(t, "26", change.Holding.AveragePrice)
}

func TestUpdater_ApplyTrade_Sale(t *testing.T) {
	tests := []struct {
		name           string
		current        *schema.TokenHolding
		amount         string
		expectedAction store.HoldingAction
		expectedBal    string
	}{
		{
			name:           "partial sale keeps cost basis",
			current:        &schema.TokenHolding{Balance: "10", AveragePrice: "20", TotalInvested: "200"},
			amount:         "4",
			expectedAction: store.HoldingActionUpdate,
			expectedBal:    "6",
		},
		{
			name:           "full sale deletes the holding",
			current:        &schema.TokenHolding{Balance: "10", AveragePrice: "20", TotalInvested: "200"},
			amount:         "10",
			expectedAction: store.HoldingActionDelete,
		},
		{
			name:           "oversell deletes the holding",
			current:        &schema.TokenHolding{Balance: "3", AveragePrice: "20", TotalInvested: "60"},
			amount:         "10",
			expectedAction: store.HoldingActionDelete,
		},
		{
			name:           "sale without a holding is a no-op",
			amount:         "1",
			expectedAction: store.HoldingActionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestHoldings(t)
			defer mocks.ctrl.Finish()

			ctx := context.Background()
			userID := uuid.New()
			current := map[uuid.UUID]*schema.TokenHolding{userID: tt.current}
			changes := map[uuid.UUID]store.HoldingChange{}

			// a sale never needs the trader's wallet
			mocks.store.EXPECT().GetLatestWalletByUserID(gomock.Any(), gomock.Any()).Times(0)
			mocks.store.EXPECT().MutateHoldings(ctx, gomock.Any()).DoAndReturn(applyAgainst(current, changes))

			err := mocks.updater.ApplyTrade(ctx, holdings.Trade{
				UserID:     userID,
				TokenID:    uuid.New(),
				Type:       domain.TransactionTypeTokenSale,
				Amount:     tt.amount,
				TotalValue: "0",
			})
			require.NoError(t, err)

			change := changes[userID]
			assert.Equal(t, tt.expectedAction, change.Action)
			if tt.expectedAction == store.HoldingActionUpdate {
				assert.Equal(t, tt.expectedBal, change.Holding.Balance)
				assert.Equal(t, tt.current.AveragePrice, change.Holding.AveragePrice)
				assert.Equal(t, tt.current.TotalInvested, change.Holding.TotalInvested)
			}
		})
	}
}

func TestUpdater_ApplyTrade_RecordedTransaction(t *testing.T) {
	t.Run("applies once under the transaction flag", func(t *testing.T) {
		mocks := setupTestHoldings(t)
		defer mocks.ctrl.Finish()

		ctx := context.Background()
		userID := uuid.New()
		txnID := uuid.New()
		price := "3"
		changes := map[uuid.UUID]store.HoldingChange{}

		mocks.store.EXPECT().GetLatestWalletByUserID(ctx, userID).Return(&schema.Wallet{ID: uuid.New(), UserID: userID}, nil)
		mocks.store.EXPECT().MutateHoldings(gomock.Any(), gomock.Any()).Times(0)
		mocks.store.EXPECT().
			ApplyTransactionHoldings(ctx, txnID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ uuid.UUID, mutations ...store.HoldingMutation) (bool, error) {
				return true, applyAgainst(map[uuid.UUID]*schema.TokenHolding{}, changes)(ctx, mutations...)
			})

		err := mocks.updater.ApplyTrade(ctx, holdings.Trade{
			TransactionID: txnID,
			UserID:        userID,
			TokenID:       uuid.New(),
			Type:          domain.TransactionTypeTokenPurchase,
			Amount:        "7",
			Price:         &price,
			TotalValue:    "21",
		})
		require.NoError(t, err)
		assert.Equal(t, store.HoldingActionCreate, changes[userID].Action)
		assert.Equal(t, "7", changes[userID].Holding.Balance)
	})

	t.Run("already applied is not an error", func(t *testing.T) {
		mocks := setupTestHoldings(t)
		defer mocks.ctrl.Finish()

		ctx := context.Background()
		txnID := uuid.New()
		mocks.store.EXPECT().ApplyTransactionHoldings(ctx, txnID, gomock.Any()).Return(false, nil)

		err := mocks.updater.ApplyTrade(ctx, holdings.Trade{
			TransactionID: txnID,
			UserID:        uuid.New(),
			TokenID:       uuid.New(),
			Type:          domain.TransactionTypeTokenSale,
			Amount:        "1",
			TotalValue:    "0",
		})
		assert.NoError(t, err)
	})
}

func TestUpdater_ApplyTrade_Rejected(t *testing.T) {
	t.Run("non trade type", func(t *testing.T) {
		mocks := setupTestHoldings(t)
		defer mocks.ctrl.Finish()

		err := mocks.updater.ApplyTrade(context.Background(), holdings.Trade{
			UserID: uuid.New(),
			Type:   domain.TransactionTypeWithdrawal,
			Amount: "1",
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidTransactionType))
	})

	t.Run("invalid amount", func(t *testing.T) {
		mocks := setupTestHoldings(t)
		defer mocks.ctrl.Finish()

		err := mocks.updater.ApplyTrade(context.Background(), holdings.Trade{
			UserID: uuid.New(),
			Type:   domain.TransactionTypeTokenPurchase,
			Amount: "1.5",
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
	})

	t.Run("user without wallet", func(t *testing.T) {
		mocks := setupTestHoldings(t)
		defer mocks.ctrl.Finish()

		ctx := context.Background()
		userID := uuid.New()
		mocks.store.EXPECT().GetLatestWalletByUserID(ctx, userID).Return(nil, nil)

		err := mocks.updater.ApplyTrade(ctx, holdings.Trade{
			UserID:     userID,
			Type:       domain.TransactionTypeTokenPurchase,
			Amount:     "1",
			TotalValue: "1",
		})
		assert.True(t, errors.Is(err, domain.ErrWalletNotFound))
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		mocks := setupTestHoldings(t)
		defer mocks.ctrl.Finish()

		ctx := context.Background()
		userID := uuid.New()
		dbErr := errors.New("connection reset")
		mocks.store.EXPECT().GetLatestWalletByUserID(ctx, userID).Return(&schema.Wallet{ID: uuid.New(), UserID: userID}, nil)
		mocks.store.EXPECT().MutateHoldings(ctx, gomock.Any()).Return(dbErr)

		err := mocks.updater.ApplyTrade(ctx, holdings.Trade{
			UserID:     userID,
			Type:       domain.TransactionTypeTokenPurchase,
			Amount:     "1",
			TotalValue: "1",
		})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUpdater_ApplyTransfer(t *testing.T) {
	mocks := setupTestHoldings(t)
	defer mocks.ctrl.Finish()

	ctx := context.Background()
	sender := &schema.Wallet{ID: uuid.New(), UserID: uuid.New()}
	receiver := &schema.Wallet{ID: uuid.New(), UserID: uuid.New()}

	current := map[uuid.UUID]*schema.TokenHolding{
		sender.UserID: {Balance: "10", AveragePrice: "5", TotalInvested: "50"},
	}
	changes := map[uuid.UUID]store.HoldingChange{}
	mocks.store.EXPECT().MutateHoldings(ctx, gomock.Any(), gomock.Any()).DoAndReturn(applyAgainst(current, changes))

	err := mocks.updater.ApplyTransfer(ctx, holdings.Transfer{
		TokenID: uuid.New(),
		From:    sender,
		To:      receiver,
		Value:   "4",
	})
	require.NoError(t, err)

	assert.Equal(t, store.HoldingActionUpdate, changes[sender.UserID].Action)
	assert.Equal(t, "6", changes[sender.UserID].Holding.Balance)

	received := changes[receiver.UserID]
	assert.Equal(t, store.HoldingActionCreate, received.Action)
	assert.Equal(t, receiver.ID, received.Holding.WalletID)
	assert.Equal(t, "4", received.Holding.Balance)
	assert.Equal(t, "0", received.Holding.AveragePrice)
	assert.Equal(t, "0", received.Holding.TotalInvested)
}

func TestUpdater_ApplyTransfer_Mint(t *testing.T) {
	mocks := setupTestHoldings(t)
	defer mocks.ctrl.Finish()

	ctx := context.Background()
	receiver := &schema.Wallet{ID: uuid.New(), UserID: uuid.New()}
	current := map[uuid.UUID]*schema.TokenHolding{
		receiver.UserID: {Balance: "1", AveragePrice: "7", TotalInvested: "7"},
	}
	changes := map[uuid.UUID]store.HoldingChange{}
	mocks.store.EXPECT().MutateHoldings(ctx, gomock.Any()).DoAndReturn(applyAgainst(current, changes))

	err := mocks.updater.ApplyTransfer(ctx, holdings.Transfer{
		TokenID: uuid.New(),
		To:      receiver,
		Value:   "9",
	})
	require.NoError(t, err)

	assert.Equal(t, store.HoldingActionUpdate, changes[receiver.UserID].Action)
	assert.Equal(t, "10", changes[receiver.UserID].Holding.Balance)
	assert.Equal(t, "7", changes[receiver.UserID].Holding.AveragePrice)
}

func TestUpdater_ApplyTransfer_NoOps(t *testing.T) {
	mocks := setupTestHoldings(t)
	defer mocks.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()

	// same owner on both sides
	err := mocks.updater.ApplyTransfer(ctx, holdings.Transfer{
		TokenID: uuid.New(),
		From:    &schema.Wallet{ID: uuid.New(), UserID: userID},
		To:      &schema.Wallet{ID: uuid.New(), UserID: userID},
		Value:   "1",
	})
	require.NoError(t, err)

	// neither side is a platform wallet
	err = mocks.updater.ApplyTransfer(ctx, holdings.Transfer{TokenID: uuid.New(), Value: "1"})
	require.NoError(t, err)

	err = mocks.updater.ApplyTransfer(ctx, holdings.Transfer{TokenID: uuid.New(), Value: "-1"})
	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}
