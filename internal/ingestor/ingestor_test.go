package ingestor_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/ingestor"
	"github.com/inorbyt/chain-sync/internal/logger"
	mockspkg "github.com/inorbyt/chain-sync/internal/mocks"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
	"github.com/inorbyt/chain-sync/internal/types"
)

const (
	testContract = "0x396343362be2a4da1ce0c1c210945346fb82aa49"
	testBuyer    = "0x742d35cc6634c0532925a3b844bc9e7595f0beb0"
	testSeller   = "0x8ba1f109551bd432803012645ac136ddd64dba72"
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

type testIngestorMocks struct {
	ctrl       *gomock.Controller
	store      *mockspkg.MockStore
	holdings   *mockspkg.MockHoldingsUpdater
	aggregator *mockspkg.MockAggregator
	notifier   *mockspkg.MockNotifier
	ingestor   ingestor.Ingestor
}

func setupTestIngestor(t *testing.T, cfg ingestor.Config) *testIngestorMocks {
	ctrl := gomock.NewController(t)
	tm := &testIngestorMocks{
		ctrl:       ctrl,
		store:      mockspkg.NewMockStore(ctrl),
		holdings:   mockspkg.NewMockHoldingsUpdater(ctrl),
		aggregator: mockspkg.NewMockAggregator(ctrl),
		notifier:   mockspkg.NewMockNotifier(ctrl),
	}
	tm.ingestor = ingestor.NewIngestor(cfg, tm.store, tm.holdings, tm.aggregator, tm.notifier)
	t.Cleanup(tm.ingestor.Close)
	return tm
}

func txHash(n int) string {
	return fmt.Sprintf("0x%064x", n)
}

func newEvent(eventType domain.EventType, n int, data string) domain.ChainEvent {
	return domain.ChainEvent{
		EventType:       eventType,
		ContractAddress: testContract,
		BlockNumber:     uint64(1000 + n), //nolint:gosec,G115
		TransactionHash: txHash(n),
		LogIndex:        uint(n % 4), //nolint:gosec,G115
		Data:            json.RawMessage(data),
	}
}

// expectInsert accepts the event row as new and returns it with a fresh id
func expectInsert(mocks *testIngestorMocks) *gomock.Call {
	return mocks.store.EXPECT().InsertBlockchainEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, row schema.BlockchainEvent) (*schema.BlockchainEvent, bool, error) {
			row.ID = uuid.New()
			return &row, true, nil
		})
}

func TestIngestor_Ingest_InvalidEvent(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	result, err := mocks.ingestor.Ingest(context.Background(), domain.ChainEvent{
		EventType:       domain.EventTypeTokenTransfer,
		ContractAddress: "not-an-address",
		TransactionHash: txHash(1),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidEvent))
	assert.False(t, result.Stored())
}

func TestIngestor_Ingest_Duplicate(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	mocks.store.EXPECT().InsertBlockchainEvent(gomock.Any(), gomock.Any()).Return(nil, false, nil)

	event := newEvent(domain.EventTypeTokenTransfer, 1, `{}`)
	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusDuplicate, result.Status)
	assert.Nil(t, result.EventID)
	assert.Equal(t, txHash(1)+":1", result.Key)
}

func TestIngestor_Ingest_Idempotent(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})
	ctx := context.Background()

	event := newEvent(domain.EventTypePriceUpdate, 2, `{"new_price":"500"}`)

	gomock.InOrder(
		expectInsert(mocks),
		mocks.store.EXPECT().InsertBlockchainEvent(gomock.Any(), gomock.Any()).Return(nil, false, nil),
	)
	// the handler and the processed flag run exactly once
	mocks.store.EXPECT().SetTokenPriceByContract(gomock.Any(), testContract, "500").Return(int64(1), nil).Times(1)
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	first, err := mocks.ingestor.Ingest(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, first.Status)

	second, err := mocks.ingestor.Ingest(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusDuplicate, second.Status)
}

func TestIngestor_Ingest_NormalizesBeforeInsert(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	event := domain.ChainEvent{
		EventType:       domain.EventType("Approval"),
		ContractAddress: "0x396343362BE2A4DA1CE0C1C210945346FB82AA49",
		BlockNumber:     77,
		TransactionHash: "0xABCDEF0000000000000000000000000000000000000000000000000000000001",
		LogIndex:        3,
	}

	mocks.store.EXPECT().InsertBlockchainEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, row schema.BlockchainEvent) (*schema.BlockchainEvent, bool, error) {
			assert.Equal(t, testContract, row.ContractAddress)
			assert.Equal(t, "0xabcdef0000000000000000000000000000000000000000000000000000000001", row.TransactionHash)
			assert.Equal(t, "77", row.BlockNumber)
			assert.Equal(t, 3, row.LogIndex)
			assert.JSONEq(t, `{}`, string(row.Data))
			row.ID = uuid.New()
			return &row, true, nil
		})
	// unknown types are stored and marked processed without a handler
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)

	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, result.Status)
	require.NotNil(t, result.EventID)
}

func TestIngestor_Ingest_StoreError(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	dbErr := errors.New("connection refused")
	mocks.store.EXPECT().InsertBlockchainEvent(gomock.Any(), gomock.Any()).Return(nil, false, dbErr)

	result, err := mocks.ingestor.Ingest(context.Background(), newEvent(domain.EventTypeTokenTransfer, 3, `{}`))
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, result.Stored())
}

func TestIngestor_Ingest_Transfer(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	token := &schema.CreatorToken{ID: uuid.New(), Symbol: "ALICE"}
	sender := &schema.Wallet{ID: uuid.New(), UserID: uuid.New(), Address: testSeller}
	receiver := &schema.Wallet{ID: uuid.New(), UserID: uuid.New(), Address: testBuyer}

	expectInsert(mocks)
	mocks.store.EXPECT().GetTokenByContractAddress(gomock.Any(), testContract).Return(token, nil)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testSeller).Return(sender, nil)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testBuyer).Return(receiver, nil)
	mocks.holdings.EXPECT().ApplyTransfer(gomock.Any(), holdings.Transfer{
		TokenID: token.ID,
		From:    sender,
		To:      receiver,
		Value:   "25",
	}).Return(nil)
	mocks.aggregator.EXPECT().Recompute(gomock.Any(), token.ID).Return(nil, nil)
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)

	event := newEvent(domain.EventTypeTokenTransfer, 4,
		fmt.Sprintf(`{"from":"%s","to":"%s","value":"0x19"}`, testSeller, testBuyer))
	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, result.Status)
}

func TestIngestor_Ingest_Mint(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	token := &schema.CreatorToken{ID: uuid.New()}
	receiver := &schema.Wallet{ID: uuid.New(), UserID: uuid.New(), Address: testBuyer}

	expectInsert(mocks)
	mocks.store.EXPECT().GetTokenByContractAddress(gomock.Any(), testContract).Return(token, nil)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testBuyer).Return(receiver, nil)
	mocks.holdings.EXPECT().ApplyTransfer(gomock.Any(), holdings.Transfer{
		TokenID: token.ID,
		To:      receiver,
		Value:   "100",
	}).Return(nil)
	// stats failures do not fail the event
	mocks.aggregator.EXPECT().Recompute(gomock.Any(), token.ID).Return(nil, errors.New("timeout"))
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)

	event := newEvent(domain.EventTypeTokenTransfer, 5,
		fmt.Sprintf(`{"from":"%s","to":"%s","value":"100"}`, domain.ETHEREUM_ZERO_ADDRESS, testBuyer))
	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, result.Status)
}

func TestIngestor_Ingest_TransferUnknownWallet(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	var eventID uuid.UUID
	mocks.store.EXPECT().InsertBlockchainEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, row schema.BlockchainEvent) (*schema.BlockchainEvent, bool, error) {
			row.ID = uuid.New()
			eventID = row.ID
			return &row, true, nil
		})
	mocks.store.EXPECT().GetTokenByContractAddress(gomock.Any(), testContract).Return(&schema.CreatorToken{ID: uuid.New()}, nil)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testSeller).Return(nil, nil)
	mocks.store.EXPECT().RecordBlockchainEventFailure(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID, msg string) error {
			assert.Equal(t, eventID, id)
			assert.Contains(t, msg, testSeller)
			return nil
		})

	event := newEvent(domain.EventTypeTokenTransfer, 6,
		fmt.Sprintf(`{"from":"%s","to":"%s","value":"1"}`, testSeller, testBuyer))
	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWalletNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, ingestor.StatusFailed, result.Status)
	assert.True(t, result.Stored())
}

func TestIngestor_Ingest_InvalidPayload(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	expectInsert(mocks)
	mocks.store.EXPECT().RecordBlockchainEventFailure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	event := newEvent(domain.EventTypePriceUpdate, 7, `{"new_price":"-3"}`)
	result, err := mocks.ingestor.Ingest(context.Background(), event)
	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
	assert.Equal(t, ingestor.StatusFailed, result.Status)
}

func TestIngestor_Ingest_Purchase(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	token := &schema.CreatorToken{ID: uuid.New(), Symbol: "ALICE"}
	buyer := &schema.Wallet{ID: uuid.New(), UserID: uuid.New(), Address: testBuyer}
	txnID := uuid.New()
	event := newEvent(domain.EventTypeTokenPurchase, 8,
		fmt.Sprintf(`{"buyer":"%s","amount":"10","price":"2000"}`, testBuyer))

	expectInsert(mocks)
	mocks.store.EXPECT().GetTokenByContractAddress(gomock.Any(), testContract).Return(token, nil)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testBuyer).Return(buyer, nil)
	mocks.store.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input store.CreateTransactionInput) (*schema.Transaction, bool, error) {
			assert.Equal(t, buyer.UserID, input.UserID)
			assert.Equal(t, buyer.ID, input.WalletID)
			assert.Equal(t, token.ID, *input.TokenID)
			assert.Equal(t, domain.TransactionTypeTokenPurchase, input.Type)
			assert.Equal(t, domain.TransactionStatusConfirmed, input.Status)
			assert.Equal(t, "10", input.Amount)
			assert.Equal(t, "2000", *input.Price)
			assert.Equal(t, "20000", input.TotalValue)
			assert.Equal(t, txHash(8), *input.TxHash)
			assert.Equal(t, "1008", *input.BlockNumber)
			return &schema.Transaction{ID: txnID}, true, nil
		})
	price := "2000"
	mocks.holdings.EXPECT().ApplyTrade(gomock.Any(), holdings.Trade{
		TransactionID: txnID,
		UserID:        buyer.UserID,
		TokenID:       token.ID,
		Type:          domain.TransactionTypeTokenPurchase,
		Amount:        "10",
		Price:         &price,
		TotalValue:    "20000",
	}).Return(nil)
	mocks.aggregator.EXPECT().Recompute(gomock.Any(), token.ID).Return(nil, nil)
	mocks.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n domain.Notification) (*schema.Notification, error) {
			assert.Equal(t, buyer.UserID.String(), n.UserID)
			assert.Equal(t, domain.NotificationTypeTransactionConfirmed, n.Type)
			return &schema.Notification{}, nil
		})
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)

	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, result.Status)
}

func TestIngestor_Ingest_PurchaseAlreadyRecorded(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	event := newEvent(domain.EventTypeTokenPurchase, 9,
		fmt.Sprintf(`{"buyer":"%s","amount":"1","price":"1","total_value":"1"}`, testBuyer))

	expectInsert(mocks)
	mocks.store.EXPECT().GetTokenByContractAddress(gomock.Any(), testContract).Return(&schema.CreatorToken{ID: uuid.New()}, nil)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testBuyer).Return(&schema.Wallet{ID: uuid.New(), UserID: uuid.New()}, nil)
	mocks.store.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(&schema.Transaction{ID: uuid.New(), HoldingsApplied: true}, false, nil)
	mocks.holdings.EXPECT().ApplyTrade(gomock.Any(), gomock.Any()).Times(0)
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)

	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, result.Status)
}

func TestIngestor_Ingest_PurchaseHoldingFailureIsRetried(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	token := &schema.CreatorToken{ID: uuid.New(), Symbol: "ALICE"}
	buyer := &schema.Wallet{ID: uuid.New(), UserID: uuid.New(), Address: testBuyer}
	txn := &schema.Transaction{ID: uuid.New()}
	event := newEvent(domain.EventTypeTokenPurchase, 10,
		fmt.Sprintf(`{"buyer":"%s","amount":"3","price":"5"}`, testBuyer))
	ctx := context.Background()

	mocks.store.EXPECT().GetTokenByContractAddress(gomock.Any(), testContract).Return(token, nil).Times(2)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testBuyer).Return(buyer, nil).Times(2)

	// first delivery records the transaction but the holding update fails
	expectInsert(mocks)
	lockErr := errors.New("lock timeout")
	gomock.InOrder(
		mocks.store.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(txn, true, nil),
		mocks.holdings.EXPECT().ApplyTrade(gomock.Any(), gomock.Any()).Return(lockErr),
		mocks.store.EXPECT().RecordBlockchainEventFailure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
	)

	result, err := mocks.ingestor.Ingest(ctx, event)
	require.ErrorIs(t, err, lockErr)
	assert.Equal(t, ingestor.StatusFailed, result.Status)

	// recovery finds the transaction recorded but not yet applied
	rowID := uuid.New()
	row := types.ChainEventToSchema(event)
	row.ID = rowID
	gomock.InOrder(
		mocks.store.EXPECT().GetUnprocessedBlockchainEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return([]schema.BlockchainEvent{row}, nil),
		mocks.store.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(txn, false, nil),
		mocks.holdings.EXPECT().ApplyTrade(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, trade holdings.Trade) error {
				assert.Equal(t, txn.ID, trade.TransactionID)
				assert.Equal(t, "3", trade.Amount)
				assert.Equal(t, "15", trade.TotalValue)
				return nil
			}),
		mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), rowID).Return(nil),
	)
	mocks.aggregator.EXPECT().Recompute(gomock.Any(), token.ID).Return(nil, nil)
	mocks.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(&schema.Notification{}, nil)

	recovered, err := mocks.ingestor.RecoverFailedEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, ingestor.RecoveryResult{Scanned: 1, Recovered: 1}, recovered)
}

func TestIngestor_Ingest_PerkRedeemed(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	perk := &schema.Perk{ID: uuid.New(), Title: "Backstage pass", IsActive: true}
	wallet := &schema.Wallet{ID: uuid.New(), UserID: uuid.New(), Address: testBuyer}

	expectInsert(mocks)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testBuyer).Return(wallet, nil)
	mocks.store.EXPECT().GetPerkByID(gomock.Any(), perk.ID).Return(perk, nil)
	mocks.store.EXPECT().CreatePerkRedemption(gomock.Any(), store.CreatePerkRedemptionInput{
		UserID: wallet.UserID,
		PerkID: perk.ID,
		Status: domain.RedemptionStatusRedeemed,
	}).Return(&schema.PerkRedemption{ID: uuid.New()}, nil)
	mocks.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil, errors.New("publisher down"))
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)

	event := newEvent(domain.EventTypePerkRedeemed, 10,
		fmt.Sprintf(`{"user":"%s","perk_id":"%s"}`, testBuyer, perk.ID))
	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, result.Status)
}

func TestIngestor_Ingest_PerkRedeemedCamelCase(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	perk := &schema.Perk{ID: uuid.New(), Title: "Backstage pass", IsActive: true}
	wallet := &schema.Wallet{ID: uuid.New(), UserID: uuid.New(), Address: testBuyer}

	expectInsert(mocks)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testBuyer).Return(wallet, nil)
	mocks.store.EXPECT().GetPerkByID(gomock.Any(), perk.ID).Return(perk, nil)
	mocks.store.EXPECT().CreatePerkRedemption(gomock.Any(), gomock.Any()).Return(&schema.PerkRedemption{ID: uuid.New()}, nil)
	mocks.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(&schema.Notification{}, nil)
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)

	event := newEvent(domain.EventTypePerkRedeemed, 12,
		fmt.Sprintf(`{"user":"%s","perkId":"%s"}`, testBuyer, perk.ID))
	result, err := mocks.ingestor.Ingest(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, result.Status)
}

func TestIngestor_Ingest_PerkRedeemedUnknownPerk(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	perkID := uuid.New()
	expectInsert(mocks)
	mocks.store.EXPECT().GetWalletByAddress(gomock.Any(), testBuyer).Return(&schema.Wallet{ID: uuid.New(), UserID: uuid.New()}, nil)
	mocks.store.EXPECT().GetPerkByID(gomock.Any(), perkID).Return(nil, nil)
	mocks.store.EXPECT().RecordBlockchainEventFailure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	event := newEvent(domain.EventTypePerkRedeemed, 11,
		fmt.Sprintf(`{"user":"%s","perk_id":"%s"}`, testBuyer, perkID))
	_, err := mocks.ingestor.Ingest(context.Background(), event)
	assert.True(t, errors.Is(err, domain.ErrPerkNotFound))
}

func TestIngestor_Ingest_PriceUpdate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		updated int64
		wantErr error
	}{
		{name: "single token", data: `{"new_price":3000}`, updated: 1},
		{name: "camelCase key", data: `{"newPrice":"3000"}`, updated: 1},
		{name: "several tokens share the contract", data: `{"new_price":3000}`, updated: 2},
		{name: "unknown contract", data: `{"new_price":3000}`, updated: 0, wantErr: domain.ErrTokenNotFound},
	}

	for idx, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := setupTestIngestor(t, ingestor.Config{})

			expectInsert(mocks)
			mocks.store.EXPECT().SetTokenPriceByContract(gomock.Any(), testContract, "3000").Return(tt.updated, nil)
			if tt.wantErr != nil {
				mocks.store.EXPECT().RecordBlockchainEventFailure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			} else {
				mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)
			}

			_, err := mocks.ingestor.Ingest(context.Background(), newEvent(domain.EventTypePriceUpdate, 20+idx, tt.data))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIngestor_Ingest_TokenDeployed(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	tokenID := uuid.New()
	expectInsert(mocks)
	mocks.store.EXPECT().MarkTokenDeployed(gomock.Any(), tokenID, testContract, txHash(30)).Return(nil)
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil)

	result, err := mocks.ingestor.Ingest(context.Background(),
		newEvent(domain.EventTypeTokenDeployed, 30, fmt.Sprintf(`{"token_id":"%s"}`, tokenID)))
	require.NoError(t, err)
	assert.Equal(t, ingestor.StatusProcessed, result.Status)
}

func TestIngestor_ProcessBatch_IsolatesFailures(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{WorkerPoolSize: 3})

	events := []domain.ChainEvent{
		newEvent(domain.EventTypePriceUpdate, 41, `{"new_price":"1"}`),
		newEvent(domain.EventTypePriceUpdate, 42, `{"new_price":"2"}`),
		newEvent(domain.EventTypePriceUpdate, 43, `{"new_price":"3"}`),
	}

	expectInsert(mocks).Times(3)
	mocks.store.EXPECT().SetTokenPriceByContract(gomock.Any(), testContract, "1").Return(int64(1), nil)
	mocks.store.EXPECT().SetTokenPriceByContract(gomock.Any(), testContract, "2").Return(int64(0), errors.New("handler exploded"))
	mocks.store.EXPECT().SetTokenPriceByContract(gomock.Any(), testContract, "3").Return(int64(1), nil)
	mocks.store.EXPECT().RecordBlockchainEventFailure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	result := mocks.ingestor.ProcessBatch(context.Background(), events)
	assert.Equal(t, ingestor.BatchResult{Successful: 2, Failed: 1}, result)
}

func TestIngestor_ProcessBatch_DuplicatesAndInvalid(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	invalid := newEvent(domain.EventTypePriceUpdate, 50, `{}`)
	invalid.TransactionHash = "0x1"

	mocks.store.EXPECT().InsertBlockchainEvent(gomock.Any(), gomock.Any()).Return(nil, false, nil)

	result := mocks.ingestor.ProcessBatch(context.Background(), []domain.ChainEvent{
		newEvent(domain.EventTypePriceUpdate, 51, `{}`),
		invalid,
	})
	assert.Equal(t, ingestor.BatchResult{Successful: 1, Failed: 1}, result)

	assert.Equal(t, ingestor.BatchResult{}, mocks.ingestor.ProcessBatch(context.Background(), nil))
}

func TestIngestor_RecoverFailedEvents(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{MaxAttempts: 5})

	rows := []schema.BlockchainEvent{
		{ID: uuid.New(), EventType: string(domain.EventTypePriceUpdate), ContractAddress: testContract, BlockNumber: "1", TransactionHash: txHash(61), Data: []byte(`{"new_price":"1"}`)},
		{ID: uuid.New(), EventType: string(domain.EventTypePriceUpdate), ContractAddress: testContract, BlockNumber: "2", TransactionHash: txHash(62), Data: []byte(`{"new_price":"2"}`), Attempts: 2},
		{ID: uuid.New(), EventType: "Approval", ContractAddress: testContract, BlockNumber: "3", TransactionHash: txHash(63), Data: []byte(`{}`)},
	}

	gomock.InOrder(
		mocks.store.EXPECT().GetUnprocessedBlockchainEvents(gomock.Any(), domain.RECOVERY_BATCH_SIZE, 5).Return(rows, nil),
		mocks.store.EXPECT().SetTokenPriceByContract(gomock.Any(), testContract, "1").Return(int64(1), nil),
		mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), rows[0].ID).Return(nil),
		mocks.store.EXPECT().SetTokenPriceByContract(gomock.Any(), testContract, "2").Return(int64(0), nil),
		mocks.store.EXPECT().RecordBlockchainEventFailure(gomock.Any(), rows[1].ID, gomock.Any()).Return(nil),
		mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), rows[2].ID).Return(nil),
	)

	result, err := mocks.ingestor.RecoverFailedEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ingestor.RecoveryResult{Scanned: 3, Recovered: 2, Failed: 1}, result)
}

func TestIngestor_RecoverFailedEvents_DoesNotReinsert(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{})

	row := schema.BlockchainEvent{ID: uuid.New(), EventType: "Approval", ContractAddress: testContract, BlockNumber: "9", TransactionHash: txHash(70)}
	mocks.store.EXPECT().GetUnprocessedBlockchainEvents(gomock.Any(), domain.RECOVERY_BATCH_SIZE, 0).Return([]schema.BlockchainEvent{row}, nil)
	mocks.store.EXPECT().MarkBlockchainEventProcessed(gomock.Any(), row.ID).Return(nil)
	mocks.store.EXPECT().InsertBlockchainEvent(gomock.Any(), gomock.Any()).Times(0)

	result, err := mocks.ingestor.RecoverFailedEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Recovered)
}

func TestIngestor_RecoverFailedEvents_LoadError(t *testing.T) {
	mocks := setupTestIngestor(t, ingestor.Config{RecoveryBatchSize: 10})

	dbErr := errors.New("too many connections")
	mocks.store.EXPECT().GetUnprocessedBlockchainEvents(gomock.Any(), 10, 0).Return(nil, dbErr)

	_, err := mocks.ingestor.RecoverFailedEvents(context.Background())
	assert.ErrorIs(t, err, dbErr)
}
