package store

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
	"github.com/inorbyt/chain-sync/internal/types"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var fixtureSeq atomic.Int64

func nextSeq() int64 {
	return fixtureSeq.Add(1)
}

// buildTestEvent creates a blockchain event row with a unique transaction hash
func buildTestEvent(eventType domain.EventType, contract string, logIndex int) schema.BlockchainEvent {
	return schema.BlockchainEvent{
		EventType:       string(eventType),
		ContractAddress: contract,
		BlockNumber:     "100",
		TransactionHash: fmt.Sprintf("0x%064x", nextSeq()),
		LogIndex:        logIndex,
		Data:            datatypes.JSON(`{}`),
	}
}

// createTestUser creates a user with one wallet
func createTestUser(t *testing.T, store Store, creator bool) (*schema.User, *schema.Wallet) {
	ctx := context.Background()
	n := nextSeq()

	user, err := store.CreateUser(ctx, CreateUserInput{
		Email:       fmt.Sprintf("user%d@example.com", n),
		Username:    fmt.Sprintf("user%d", n),
		DisplayName: fmt.Sprintf("User %d", n),
		IsCreator:   creator,
	})
	require.NoError(t, err)

	wallet, err := store.CreateWallet(ctx, CreateWalletInput{
		UserID:     user.ID,
		Address:    fmt.Sprintf("0x%040x", n),
		WalletType: domain.WalletTypeMetamask,
	})
	require.NoError(t, err)

	return user, wallet
}

// createTestToken creates a deployed token owned by a fresh creator
func createTestToken(t *testing.T, store Store, startingPrice string) *schema.CreatorToken {
	ctx := context.Background()
	creator, _ := createTestUser(t, store, true)
	require.NotNil(t, creator.CreatorProfile)

	n := nextSeq()
	token, err := store.CreateToken(ctx, CreateTokenInput{
		CreatorID:       creator.CreatorProfile.ID,
		Name:            fmt.Sprintf("Token %d", n),
		Symbol:          fmt.Sprintf("T%d", n),
		TotalSupply:     "1000000",
		StartingPrice:   startingPrice,
		MaxTokensPerFan: "1000",
	})
	require.NoError(t, err)

	contract := fmt.Sprintf("0x%040x", 1<<40+n)
	txHash := fmt.Sprintf("0x%064x", 1<<40+n)
	require.NoError(t, store.MarkTokenDeployed(ctx, token.ID, contract, txHash))

	token, err = store.GetTokenByID(ctx, token.ID)
	require.NoError(t, err)
	return token
}

func strPtr(s string) *string {
	return &s
}

// =============================================================================
// Test: Blockchain events
// =============================================================================

func testInsertBlockchainEvent(t *testing.T, store Store) {
	ctx := context.Background()
	contract := "0x396343362be2a4da1ce0c1c210945346fb82aa49"

	t.Run("first insert wins and duplicates are reported", func(t *testing.T) {
		event := buildTestEvent(domain.EventTypeTokenTransfer, contract, 0)

		row, inserted, err := store.InsertBlockchainEvent(ctx, event)
		require.NoError(t, err)
		require.True(t, inserted)
		require.NotNil(t, row)
		assert.NotEqual(t, uuid.Nil, row.ID)
		assert.False(t, row.Processed)

		dup, inserted, err := store.InsertBlockchainEvent(ctx, event)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Nil(t, dup)

		events, total, err := store.GetBlockchainEvents(ctx, BlockchainEventFilter{ContractAddress: contract})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		assert.Len(t, events, 1)
	})

	t.Run("same transaction with another log index is a new event", func(t *testing.T) {
		event := buildTestEvent(domain.EventTypeTokenTransfer, contract, 0)
		_, inserted, err := store.InsertBlockchainEvent(ctx, event)
		require.NoError(t, err)
		require.True(t, inserted)

		event.LogIndex = 1
		_, inserted, err = store.InsertBlockchainEvent(ctx, event)
		require.NoError(t, err)
		assert.True(t, inserted)
	})
}

func testBlockchainEventLifecycle(t *testing.T, store Store) {
	ctx := context.Background()
	contract := "0x1111111111111111111111111111111111111111"

	row, _, err := store.InsertBlockchainEvent(ctx, buildTestEvent(domain.EventTypePriceUpdate, contract, 0))
	require.NoError(t, err)

	require.NoError(t, store.RecordBlockchainEventFailure(ctx, row.ID, "boom"))
	require.NoError(t, store.RecordBlockchainEventFailure(ctx, row.ID, "boom again"))

	unprocessed, err := store.GetUnprocessedBlockchainEvents(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, unprocessed, 1)
	assert.Equal(t, 2, unprocessed[0].Attempts)
	assert.Equal(t, "boom again", *unprocessed[0].LastError)

	// maxAttempts hides the poison event
	unprocessed, err = store.GetUnprocessedBlockchainEvents(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)

	require.NoError(t, store.MarkBlockchainEventProcessed(ctx, row.ID))

	processed := true
	events, _, err := store.GetBlockchainEvents(ctx, BlockchainEventFilter{Processed: &processed})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].Processed)
	assert.NotNil(t, events[0].ProcessedAt)
	assert.Nil(t, events[0].LastError)

	unprocessed, err = store.GetUnprocessedBlockchainEvents(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, unprocessed)
}

func testGetUnprocessedBlockchainEvents(t *testing.T, store Store) {
	ctx := context.Background()
	contract := "0x2222222222222222222222222222222222222222"

	var ids []uuid.UUID
	for i := 0; i < 105; i++ {
		row, inserted, err := store.InsertBlockchainEvent(ctx, buildTestEvent(domain.EventTypeTokenTransfer, contract, 0))
		require.NoError(t, err)
		require.True(t, inserted)
		ids = append(ids, row.ID)
	}

	events, err := store.GetUnprocessedBlockchainEvents(ctx, domain.RECOVERY_BATCH_SIZE, 0)
	require.NoError(t, err)
	require.Len(t, events, domain.RECOVERY_BATCH_SIZE)

	// oldest first
	for i, e := range events {
		assert.Equal(t, ids[i], e.ID)
	}

	events, err = store.GetUnprocessedBlockchainEvents(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

// =============================================================================
// Test: Users and wallets
// =============================================================================

func testUsersAndWallets(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creator gets a profile", func(t *testing.T) {
		user, wallet := createTestUser(t, store, true)
		require.NotNil(t, user.CreatorProfile)

		fetched, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		require.NotNil(t, fetched.CreatorProfile)
		assert.Equal(t, user.CreatorProfile.ID, fetched.CreatorProfile.ID)

		assert.Equal(t, domain.DEFAULT_WALLET_CHAIN_ID, wallet.ChainID)
		assert.Equal(t, domain.DEFAULT_WALLET_NETWORK_NAME, wallet.NetworkName)
	})

	t.Run("fan has no profile", func(t *testing.T) {
		user, _ := createTestUser(t, store, false)
		fetched, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched.CreatorProfile)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		user, _ := createTestUser(t, store, false)
		_, err := store.CreateUser(ctx, CreateUserInput{
			Email:       "other@example.com",
			Username:    user.Username,
			DisplayName: "Other",
		})
		assert.ErrorIs(t, err, domain.ErrUserTaken)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("duplicate wallet address is a conflict", func(t *testing.T) {
		user, wallet := createTestUser(t, store, false)
		_, err := store.CreateWallet(ctx, CreateWalletInput{
			UserID:     user.ID,
			Address:    wallet.Address,
			WalletType: domain.WalletTypeCoinbase,
		})
		assert.ErrorIs(t, err, domain.ErrWalletTaken)
	})

	t.Run("latest wallet is the most recently created", func(t *testing.T) {
		user, first := createTestUser(t, store, false)
		second, err := store.CreateWallet(ctx, CreateWalletInput{
			UserID:     user.ID,
			Address:    fmt.Sprintf("0x%040x", 1<<50+nextSeq()),
			WalletType: domain.WalletTypeEmbedded,
		})
		require.NoError(t, err)

		latest, err := store.GetLatestWalletByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, second.ID, latest.ID)
		assert.NotEqual(t, first.ID, latest.ID)

		byAddress, err := store.GetWalletByAddress(ctx, first.Address)
		require.NoError(t, err)
		assert.Equal(t, first.ID, byAddress.ID)
	})

	t.Run("missing rows return nil", func(t *testing.T) {
		user, err := store.GetUserByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, user)

		wallet, err := store.GetLatestWalletByUserID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, wallet)

		wallet, err = store.GetWalletByAddress(ctx, "0x9999999999999999999999999999999999999999")
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})
}

// =============================================================================
// Test: Tokens
// =============================================================================

func testTokens(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create token with perks", func(t *testing.T) {
		creator, _ := createTestUser(t, store, true)
		maxRedemptions := 10
		token, err := store.CreateToken(ctx, CreateTokenInput{
			CreatorID:       creator.CreatorProfile.ID,
			Name:            "Perked",
			Symbol:          "PERK1",
			TotalSupply:     "1000000",
			StartingPrice:   "500",
			MaxTokensPerFan: "1000",
			Perks: []CreatePerkInput{
				{Title: "Exclusive Content", Description: "d", Type: domain.PerkTypeExclusiveContent, MinTokensRequired: strPtr("100")},
				{Title: "Community Access", Description: "d", Type: domain.PerkTypeCommunityAccess, MinTokensRequired: strPtr("500"), MaxRedemptions: &maxRedemptions},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "500", token.FloorPrice)
		assert.Equal(t, "500", *token.CurrentPrice)
		assert.False(t, token.IsDeployed)

		perks, err := store.GetPerksByTokenID(ctx, token.ID)
		require.NoError(t, err)
		require.Len(t, perks, 2)
		assert.Equal(t, creator.CreatorProfile.ID, perks[0].CreatorID)
		assert.True(t, perks[0].IsActive)

		_, err = store.CreateToken(ctx, CreateTokenInput{
			CreatorID:       creator.CreatorProfile.ID,
			Name:            "Copy",
			Symbol:          "PERK1",
			TotalSupply:     "1",
			StartingPrice:   "1",
			MaxTokensPerFan: "1",
		})
		assert.ErrorIs(t, err, domain.ErrSymbolTaken)
	})

	t.Run("deploy token", func(t *testing.T) {
		token := createTestToken(t, store, "100")
		require.True(t, token.IsDeployed)
		require.NotNil(t, token.ContractAddress)

		// same contract again is a no-op
		require.NoError(t, store.MarkTokenDeployed(ctx, token.ID, *token.ContractAddress, *token.DeploymentTxHash))

		err := store.MarkTokenDeployed(ctx, token.ID, "0x3333333333333333333333333333333333333333", *token.DeploymentTxHash)
		assert.ErrorIs(t, err, domain.ErrTokenAlreadyDeployed)

		err = store.MarkTokenDeployed(ctx, uuid.New(), "0x3333333333333333333333333333333333333333", "0x00")
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)

		byContract, err := store.GetTokenByContractAddress(ctx, *token.ContractAddress)
		require.NoError(t, err)
		assert.Equal(t, token.ID, byContract.ID)

		ids, err := store.GetDeployedTokenIDs(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, token.ID)

		addresses, err := store.GetDeployedContractAddresses(ctx)
		require.NoError(t, err)
		assert.Contains(t, addresses, *token.ContractAddress)
	})

	t.Run("contract address already used by another token", func(t *testing.T) {
		deployed := createTestToken(t, store, "100")
		creator, _ := createTestUser(t, store, true)
		other, err := store.CreateToken(ctx, CreateTokenInput{
			CreatorID:       creator.CreatorProfile.ID,
			Name:            "Other",
			Symbol:          fmt.Sprintf("O%d", nextSeq()),
			TotalSupply:     "1",
			StartingPrice:   "1",
			MaxTokensPerFan: "1",
		})
		require.NoError(t, err)

		err = store.MarkTokenDeployed(ctx, other.ID, *deployed.ContractAddress, "0xabc")
		assert.ErrorIs(t, err, domain.ErrContractTaken)
	})

	t.Run("price update by contract", func(t *testing.T) {
		token := createTestToken(t, store, "100")

		n, err := store.SetTokenPriceByContract(ctx, *token.ContractAddress, "250")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		updated, err := store.GetTokenByID(ctx, token.ID)
		require.NoError(t, err)
		assert.Equal(t, "250", *updated.CurrentPrice)

		n, err = store.SetTokenPriceByContract(ctx, "0x4444444444444444444444444444444444444444", "1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("stats overwrite", func(t *testing.T) {
		token := createTestToken(t, store, "100")

		err := store.UpdateTokenStats(ctx, token.ID, TokenStatsInput{TotalHolders: 3, TotalVolume: "123456789012345678901234567890", FloorPrice: "77"})
		require.NoError(t, err)

		updated, err := store.GetTokenByID(ctx, token.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.TotalHolders)
		assert.Equal(t, "123456789012345678901234567890", updated.TotalVolume)
		assert.Equal(t, "77", updated.FloorPrice)

		err = store.UpdateTokenStats(ctx, uuid.New(), TokenStatsInput{TotalVolume: "0", FloorPrice: "0"})
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})

	t.Run("list tokens", func(t *testing.T) {
		token := createTestToken(t, store, "100")
		deployed := true
		tokens, total, err := store.GetTokens(ctx, TokenFilter{CreatorID: &token.CreatorID, Deployed: &deployed})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, tokens, 1)
		assert.Equal(t, token.ID, tokens[0].ID)
	})
}

// =============================================================================
// Test: Holdings
// =============================================================================

func testMutateHoldings(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, "100")
	user, wallet := createTestUser(t, store, false)

	set := func(balance string) HoldingMutator {
		return func(current *schema.TokenHolding) (HoldingChange, error) {
			h := &schema.TokenHolding{WalletID: wallet.ID, Balance: balance, AveragePrice: "10", TotalInvested: "100"}
			if current == nil {
				return HoldingChange{Action: HoldingActionCreate, Holding: h}, nil
			}
			return HoldingChange{Action: HoldingActionUpdate, Holding: h}, nil
		}
	}

	require.NoError(t, store.MutateHoldings(ctx, HoldingMutation{UserID: user.ID, TokenID: token.ID, Mutate: set("5")}))

	holding, err := store.GetHolding(ctx, user.ID, token.ID)
	require.NoError(t, err)
	require.NotNil(t, holding)
	assert.Equal(t, "5", holding.Balance)
	assert.True(t, holding.IsActive)
	assert.NotNil(t, holding.LastSyncedAt)

	require.NoError(t, store.MutateHoldings(ctx, HoldingMutation{UserID: user.ID, TokenID: token.ID, Mutate: set("8")}))
	holding, err = store.GetHolding(ctx, user.ID, token.ID)
	require.NoError(t, err)
	assert.Equal(t, "8", holding.Balance)

	count, err := store.CountActiveHoldings(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	t.Run("a failing mutation rolls back the whole set", func(t *testing.T) {
		other, otherWallet := createTestUser(t, store, false)
		err := store.MutateHoldings(ctx,
			HoldingMutation{UserID: other.ID, TokenID: token.ID, Mutate: func(current *schema.TokenHolding) (HoldingChange, error) {
				return HoldingChange{Action: HoldingActionCreate, Holding: &schema.TokenHolding{WalletID: otherWallet.ID, Balance: "1", AveragePrice: "0", TotalInvested: "0"}}, nil
			}},
			HoldingMutation{UserID: user.ID, TokenID: token.ID, Mutate: func(current *schema.TokenHolding) (HoldingChange, error) {
				return HoldingChange{}, domain.ErrInvalidAmount
			}},
		)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		h, err := store.GetHolding(ctx, other.ID, token.ID)
		require.NoError(t, err)
		assert.Nil(t, h)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		err := store.MutateHoldings(ctx, HoldingMutation{UserID: user.ID, TokenID: token.ID, Mutate: func(current *schema.TokenHolding) (HoldingChange, error) {
			require.NotNil(t, current)
			return HoldingChange{Action: HoldingActionDelete}, nil
		}})
		require.NoError(t, err)

		h, err := store.GetHolding(ctx, user.ID, token.ID)
		require.NoError(t, err)
		assert.Nil(t, h)

		holdings, err := store.GetHoldingsByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, holdings)
	})
}

// =============================================================================
// Test: Transactions and statistics queries
// =============================================================================

func testTransactions(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, "100")
	user, wallet := createTestUser(t, store, false)

	newTrade := func(price *string, total string, status domain.TransactionStatus) CreateTransactionInput {
		return CreateTransactionInput{
			UserID:     user.ID,
			WalletID:   wallet.ID,
			TokenID:    &token.ID,
			Type:       domain.TransactionTypeTokenPurchase,
			Amount:     "1",
			Price:      price,
			TotalValue: total,
			TxHash:     strPtr(fmt.Sprintf("0x%064x", 1<<60+nextSeq())),
			Status:     status,
		}
	}

	t.Run("dedupe on tx hash", func(t *testing.T) {
		input := newTrade(strPtr("10"), "10", domain.TransactionStatusConfirmed)
		first, created, err := store.CreateTransaction(ctx, input)
		require.NoError(t, err)
		assert.True(t, created)

		again, created, err := store.CreateTransaction(ctx, input)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, again.ID)
	})

	t.Run("transactions without hash are never deduped", func(t *testing.T) {
		input := newTrade(nil, "0", domain.TransactionStatusPending)
		input.TxHash = nil
		_, created, err := store.CreateTransaction(ctx, input)
		require.NoError(t, err)
		assert.True(t, created)
		_, created, err = store.CreateTransaction(ctx, input)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("status transitions", func(t *testing.T) {
		input := newTrade(strPtr("10"), "10", "")
		txn, _, err := store.CreateTransaction(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusPending, txn.Status)

		confirmed := domain.TransactionStatusConfirmed
		updated, err := store.UpdateTransaction(ctx, txn.ID, UpdateTransactionInput{Status: &confirmed, BlockNumber: strPtr("42")})
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusConfirmed, updated.Status)
		assert.Equal(t, "42", *updated.BlockNumber)

		pending := domain.TransactionStatusPending
		_, err = store.UpdateTransaction(ctx, txn.ID, UpdateTransactionInput{Status: &pending})
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

		_, err = store.UpdateTransaction(ctx, uuid.New(), UpdateTransactionInput{Status: &pending})
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("expected status", func(t *testing.T) {
		txn, _, err := store.CreateTransaction(ctx, newTrade(strPtr("10"), "10", ""))
		require.NoError(t, err)

		pending := domain.TransactionStatusPending
		confirmed := domain.TransactionStatusConfirmed
		_, err = store.UpdateTransaction(ctx, txn.ID, UpdateTransactionInput{ExpectedStatus: &pending, Status: &confirmed})
		require.NoError(t, err)

		_, err = store.UpdateTransaction(ctx, txn.ID, UpdateTransactionInput{ExpectedStatus: &pending, Status: &confirmed})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("gas payment", func(t *testing.T) {
		txn, _, err := store.CreateTransaction(ctx, newTrade(strPtr("10"), "10", domain.TransactionStatusConfirmed))
		require.NoError(t, err)

		payment, err := store.RecordGasPayment(ctx, RecordGasPaymentInput{
			TransactionID: txn.ID,
			TxHash:        *txn.TxHash,
			GasUsed:       "21000",
			GasPrice:      "1000000000",
			PaidBy:        "0x5555555555555555555555555555555555555555",
		})
		require.NoError(t, err)
		assert.Equal(t, "21000000000000", payment.Amount)

		fetched, err := store.GetTransactionByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, "21000", *fetched.GasUsed)
		assert.Equal(t, "1000000000", *fetched.GasPrice)
	})

	t.Run("filter", func(t *testing.T) {
		confirmed := domain.TransactionStatusConfirmed
		txns, total, err := store.GetTransactions(ctx, TransactionFilter{UserID: &user.ID, Status: &confirmed, Limit: 2})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, uint64(3))
		assert.Len(t, txns, 2)
	})
}

func testTokenStatisticsQueries(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, "100")
	user, wallet := createTestUser(t, store, false)

	record := func(price *string, total string, status domain.TransactionStatus) {
		_, _, err := store.CreateTransaction(ctx, CreateTransactionInput{
			UserID:     user.ID,
			WalletID:   wallet.ID,
			TokenID:    &token.ID,
			Type:       domain.TransactionTypeTokenPurchase,
			Amount:     "1",
			Price:      price,
			TotalValue: total,
			TxHash:     strPtr(fmt.Sprintf("0x%064x", 1<<61+nextSeq())),
			Status:     status,
		})
		require.NoError(t, err)
	}

	volume, err := store.SumConfirmedVolume(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, "0", volume)

	prices, err := store.GetRecentConfirmedPrices(ctx, token.ID, domain.FLOOR_PRICE_WINDOW)
	require.NoError(t, err)
	assert.Empty(t, prices)

	// 12 priced trades: the oldest two fall outside the window
	for i := 1; i <= 12; i++ {
		record(strPtr(fmt.Sprintf("%d", i*10)), "1000000000000000000000", domain.TransactionStatusConfirmed)
	}
	record(nil, "5", domain.TransactionStatusConfirmed)
	record(strPtr("0"), "5", domain.TransactionStatusConfirmed)
	record(strPtr("999"), "999", domain.TransactionStatusPending)

	volume, err = store.SumConfirmedVolume(ctx, token.ID)
	require.NoError(t, err)
	assert.Equal(t, "12000000000000000000010", volume)

	prices, err = store.GetRecentConfirmedPrices(ctx, token.ID, domain.FLOOR_PRICE_WINDOW)
	require.NoError(t, err)
	require.Len(t, prices, 10)
	assert.Equal(t, "120", prices[0])
	assert.Equal(t, "30", prices[9])
}

// =============================================================================
// Test: Perks and notifications
// =============================================================================

func testPerkRedemptions(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, "100")
	user, _ := createTestUser(t, store, false)

	limit := 1
	perk, err := store.CreatePerk(ctx, CreatePerkInput{
		CreatorID:      token.CreatorID,
		TokenID:        &token.ID,
		Title:          "Meet",
		Description:    "Meet the creator",
		Type:           domain.PerkTypeMeetAndGreet,
		MaxRedemptions: &limit,
	})
	require.NoError(t, err)

	redemption, err := store.CreatePerkRedemption(ctx, CreatePerkRedemptionInput{UserID: user.ID, PerkID: perk.ID, EnforceLimit: true})
	require.NoError(t, err)
	assert.Equal(t, domain.RedemptionStatusRedeemed, redemption.Status)
	assert.NotNil(t, redemption.RedeemedAt)

	_, err = store.CreatePerkRedemption(ctx, CreatePerkRedemptionInput{UserID: user.ID, PerkID: perk.ID, EnforceLimit: true})
	assert.ErrorIs(t, err, domain.ErrRedemptionLimitReached)

	// chain events are recorded regardless of the limit
	_, err = store.CreatePerkRedemption(ctx, CreatePerkRedemptionInput{UserID: user.ID, PerkID: perk.ID})
	require.NoError(t, err)

	updated, err := store.GetPerkByID(ctx, perk.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentRedemptions)

	_, err = store.CreatePerkRedemption(ctx, CreatePerkRedemptionInput{UserID: user.ID, PerkID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrPerkNotFound)
}

func testNotifications(t *testing.T, store Store) {
	ctx := context.Background()
	user, _ := createTestUser(t, store, false)

	for i := 0; i < 3; i++ {
		_, err := store.CreateNotification(ctx, CreateNotificationInput{
			UserID:  user.ID,
			Type:    domain.NotificationTypeSystemUpdate,
			Title:   fmt.Sprintf("n%d", i),
			Message: "hello",
			Data:    datatypes.JSON(`{"k":"v"}`),
		})
		require.NoError(t, err)
	}

	notifications, total, err := store.GetNotificationsByUserID(ctx, user.ID, false, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, notifications, 3)
	assert.Equal(t, "n2", notifications[0].Title)

	require.NoError(t, store.MarkNotificationRead(ctx, notifications[0].ID))

	_, total, err = store.GetNotificationsByUserID(ctx, user.ID, true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)

	err = store.MarkNotificationRead(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

// =============================================================================
// Test: Block cursor
// =============================================================================

func testBlockCursor(t *testing.T, store Store) {
	ctx := context.Background()

	cursor, err := store.GetBlockCursor(ctx, "eip155:8453")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)

	require.NoError(t, store.SetBlockCursor(ctx, "eip155:8453", 1234))
	require.NoError(t, store.SetBlockCursor(ctx, "eip155:8453", 1240))

	cursor, err = store.GetBlockCursor(ctx, "eip155:8453")
	require.NoError(t, err)
	assert.Equal(t, uint64(1240), cursor)
}

func testApplyTransactionHoldings(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, "100")
	user, wallet := createTestUser(t, store, false)

	txn, created, err := store.CreateTransaction(ctx, CreateTransactionInput{
		UserID:     user.ID,
		WalletID:   wallet.ID,
		TokenID:    &token.ID,
		Type:       domain.TransactionTypeTokenPurchase,
		Amount:     "3",
		TotalValue: "300",
		TxHash:     types.StringPtr("0x7777777777777777777777777777777777777777777777777777777777777777"),
		Status:     domain.TransactionStatusConfirmed,
	})
	require.NoError(t, err)
	require.True(t, created)
	assert.False(t, txn.HoldingsApplied)

	credit := HoldingMutation{UserID: user.ID, TokenID: token.ID, Mutate: func(current *schema.TokenHolding) (HoldingChange, error) {
		if current == nil {
			return HoldingChange{Action: HoldingActionCreate, Holding: &schema.TokenHolding{WalletID: wallet.ID, Balance: "3", AveragePrice: "100", TotalInvested: "300"}}, nil
		}
		current.Balance = "6"
		return HoldingChange{Action: HoldingActionUpdate, Holding: current}, nil
	}}

	t.Run("a failed mutation leaves the trade unapplied", func(t *testing.T) {
		applied, err := store.ApplyTransactionHoldings(ctx, txn.ID, HoldingMutation{UserID: user.ID, TokenID: token.ID, Mutate: func(*schema.TokenHolding) (HoldingChange, error) {
			return HoldingChange{}, domain.ErrInvalidAmount
		}})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
		assert.False(t, applied)

		reloaded, err := store.GetTransactionByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.False(t, reloaded.HoldingsApplied)
	})

	applied, err := store.ApplyTransactionHoldings(ctx, txn.ID, credit)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = store.ApplyTransactionHoldings(ctx, txn.ID, credit)
	require.NoError(t, err)
	assert.False(t, applied)

	holding, err := store.GetHolding(ctx, user.ID, token.ID)
	require.NoError(t, err)
	require.NotNil(t, holding)
	assert.Equal(t, "3", holding.Balance)

	reloaded, err := store.GetTransactionByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.HoldingsApplied)

	// a replayed tx hash returns the flag with the existing row
	existing, created, err := store.CreateTransaction(ctx, CreateTransactionInput{
		UserID:     user.ID,
		WalletID:   wallet.ID,
		TokenID:    &token.ID,
		Type:       domain.TransactionTypeTokenPurchase,
		Amount:     "3",
		TotalValue: "300",
		TxHash:     txn.TxHash,
		Status:     domain.TransactionStatusConfirmed,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, existing.HoldingsApplied)
}

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"InsertBlockchainEvent", testInsertBlockchainEvent},
		{"BlockchainEventLifecycle", testBlockchainEventLifecycle},
		{"GetUnprocessedBlockchainEvents", testGetUnprocessedBlockchainEvents},
		{"UsersAndWallets", testUsersAndWallets},
		{"Tokens", testTokens},
		{"MutateHoldings", testMutateHoldings},
		{"ApplyTransactionHoldings", testApplyTransactionHoldings},
		{"Transactions", testTransactions},
		{"TokenStatisticsQueries", testTokenStatisticsQueries},
		{"PerkRedemptions", testPerkRedemptions},
		{"Notifications", testNotifications},
		{"BlockCursor", testBlockCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
