package ingestor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/logger"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

// handleTransfer moves the token balance between the holdings of the two
// wallet owners. The zero address stands for a mint or burn.
func (i *ingestor) handleTransfer(ctx context.Context, event domain.ChainEvent) error {
	var payload domain.TransferPayload
	if err := domain.DecodePayload(event.Data, &payload); err != nil {
		return err
	}

	token, err := i.tokenByContract(ctx, event.ContractAddress)
	if err != nil {
		return err
	}

	transfer := holdings.Transfer{
		TokenID: token.ID,
		Value:   payload.Value.String(),
	}
	if !domain.IsZeroAddress(payload.From) {
		if transfer.From, err = i.walletByAddress(ctx, payload.From); err != nil {
			return err
		}
	}
	if !domain.IsZeroAddress(payload.To) {
		if transfer.To, err = i.walletByAddress(ctx, payload.To); err != nil {
			return err
		}
	}

	if err := i.holdings.ApplyTransfer(ctx, transfer); err != nil {
		return err
	}

	i.recompute(ctx, token.ID)
	return nil
}

// handlePurchase records a confirmed purchase for the buyer and credits the
// buyer's holding. A replay whose trade is already applied has no effect; one
// whose trade failed earlier applies it now.
func (i *ingestor) handlePurchase(ctx context.Context, event domain.ChainEvent) error {
	var payload domain.PurchasePayload
	if err := domain.DecodePayload(event.Data, &payload); err != nil {
		return err
	}

	token, err := i.tokenByContract(ctx, event.ContractAddress)
	if err != nil {
		return err
	}
	wallet, err := i.walletByAddress(ctx, payload.Buyer)
	if err != nil {
		return err
	}

	price := payload.Price.String()
	blockNumber := strconv.FormatUint(event.BlockNumber, 10)
	description := fmt.Sprintf("Purchased %s %s", payload.Amount, token.Symbol)
	tx, created, err := i.store.CreateTransaction(ctx, store.CreateTransactionInput{
		UserID:      wallet.UserID,
		WalletID:    wallet.ID,
		TokenID:     &token.ID,
		Type:        domain.TransactionTypeTokenPurchase,
		Amount:      payload.Amount.String(),
		Price:       &price,
		TotalValue:  payload.TotalValue.String(),
		TxHash:      &event.TransactionHash,
		BlockNumber: &blockNumber,
		Status:      domain.TransactionStatusConfirmed,
		Description: &description,
	})
	if err != nil {
		return fmt.Errorf("failed to create purchase transaction: %w", err)
	}
	if !created && tx.HoldingsApplied {
		logger.DebugCtx(ctx, "Purchase already recorded", zap.String("transaction_id", tx.ID.String()))
		return nil
	}

	if err := i.holdings.ApplyTrade(ctx, holdings.Trade{
		TransactionID: tx.ID,
		UserID:        wallet.UserID,
		TokenID:       token.ID,
		Type:          domain.TransactionTypeTokenPurchase,
		Amount:        payload.Amount.String(),
		Price:         &price,
		TotalValue:    payload.TotalValue.String(),
	}); err != nil {
		return fmt.Errorf("failed to apply purchase to holding: %w", err)
	}

	i.recompute(ctx, token.ID)

	actionURL := fmt.Sprintf("/tokens/%s", token.ID)
	i.notify(ctx, domain.Notification{
		UserID:  wallet.UserID.String(),
		Type:    domain.NotificationTypeTransactionConfirmed,
		Title:   "Purchase confirmed",
		Message: description,
		Data: map[string]interface{}{
			"transaction_id": tx.ID.String(),
			"token_id":       token.ID.String(),
			"amount":         payload.Amount.String(),
			"tx_hash":        event.TransactionHash,
		},
		ActionURL: &actionURL,
	})

	return nil
}

// handlePerkRedeemed records an on-chain perk redemption
func (i *ingestor) handlePerkRedeemed(ctx context.Context, event domain.ChainEvent) error {
	var payload domain.PerkRedeemedPayload
	if err := domain.DecodePayload(event.Data, &payload); err != nil {
		return err
	}

	perkID, err := uuid.Parse(payload.PerkID)
	if err != nil {
		return fmt.Errorf("%w: perk_id %q is not a uuid", domain.ErrInvalidEvent, payload.PerkID)
	}

	wallet, err := i.walletByAddress(ctx, payload.User)
	if err != nil {
		return err
	}

	perk, err := i.store.GetPerkByID(ctx, perkID)
	if err != nil {
		return fmt.Errorf("failed to get perk: %w", err)
	}
	if perk == nil {
		return fmt.Errorf("%w: %s", domain.ErrPerkNotFound, perkID)
	}

	redemption, err := i.store.CreatePerkRedemption(ctx, store.CreatePerkRedemptionInput{
		UserID: wallet.UserID,
		PerkID: perkID,
		Status: domain.RedemptionStatusRedeemed,
	})
	if err != nil {
		return fmt.Errorf("failed to create perk redemption: %w", err)
	}

	i.notify(ctx, domain.Notification{
		UserID:  wallet.UserID.String(),
		Type:    domain.NotificationTypePerkRedemption,
		Title:   "Perk redeemed",
		Message: fmt.Sprintf("You redeemed %s", perk.Title),
		Data: map[string]interface{}{
			"perk_id":       perkID.String(),
			"redemption_id": redemption.ID.String(),
		},
	})

	return nil
}

// handlePriceUpdate sets current_price on every token with the event's contract address
func (i *ingestor) handlePriceUpdate(ctx context.Context, event domain.ChainEvent) error {
	var payload domain.PriceUpdatePayload
	if err := domain.DecodePayload(event.Data, &payload); err != nil {
		return err
	}

	updated, err := i.store.SetTokenPriceByContract(ctx, event.ContractAddress, payload.NewPrice.String())
	if err != nil {
		return fmt.Errorf("failed to update token price: %w", err)
	}
	if updated == 0 {
		return fmt.Errorf("%w: contract %s", domain.ErrTokenNotFound, event.ContractAddress)
	}
	if updated > 1 {
		logger.WarnCtx(ctx, "Price update matched more than one token",
			zap.String("contract_address", event.ContractAddress),
			zap.Int64("tokens", updated))
	}

	return nil
}

// handleTokenDeployed records the contract address of a newly deployed token
func (i *ingestor) handleTokenDeployed(ctx context.Context, event domain.ChainEvent) error {
	var payload domain.TokenDeployedPayload
	if err := domain.DecodePayload(event.Data, &payload); err != nil {
		return err
	}

	tokenID, err := uuid.Parse(payload.TokenID)
	if err != nil {
		return fmt.Errorf("%w: token_id %q is not a uuid", domain.ErrInvalidEvent, payload.TokenID)
	}

	if err := i.store.MarkTokenDeployed(ctx, tokenID, event.ContractAddress, event.TransactionHash); err != nil {
		return fmt.Errorf("failed to mark token deployed: %w", err)
	}

	logger.InfoCtx(ctx, "Token deployed",
		zap.String("token_id", tokenID.String()),
		zap.String("contract_address", event.ContractAddress))

	return nil
}

func (i *ingestor) tokenByContract(ctx context.Context, contractAddress string) (*schema.CreatorToken, error) {
	token, err := i.store.GetTokenByContractAddress(ctx, contractAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if token == nil {
		return nil, fmt.Errorf("%w: contract %s", domain.ErrTokenNotFound, contractAddress)
	}
	return token, nil
}

func (i *ingestor) walletByAddress(ctx context.Context, address string) (*schema.Wallet, error) {
	wallet, err := i.store.GetWalletByAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, address)
	}
	return wallet, nil
}

// recompute refreshes token stats after a committed change. Failures are only
// logged: the change is already committed and the reconcile sweeper repairs the stats.
func (i *ingestor) recompute(ctx context.Context, tokenID uuid.UUID) {
	if _, err := i.aggregator.Recompute(ctx, tokenID); err != nil {
		logger.WarnCtx(ctx, "Failed to recompute token stats",
			zap.Error(err),
			zap.String("token_id", tokenID.String()))
	}
}

func (i *ingestor) notify(ctx context.Context, notification domain.Notification) {
	if i.notifier == nil {
		return
	}
	if _, err := i.notifier.Notify(ctx, notification); err != nil {
		logger.WarnCtx(ctx, "Failed to send notification",
			zap.Error(err),
			zap.String("user_id", notification.UserID),
			zap.String("type", string(notification.Type)))
	}
}
