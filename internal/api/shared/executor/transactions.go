package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/inorbyt/chain-sync/internal/api/shared/dto"
	apierrors "github.com/inorbyt/chain-sync/internal/api/shared/errors"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/holdings"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
	"github.com/inorbyt/chain-sync/internal/types"
)

// CreateTransaction records a transaction. One carrying a tx hash is confirmed on
// arrival: trades move the trader's holding and the user is notified. A tx hash
// that is already recorded returns the existing row, finishing its trade first
// when an earlier call recorded it but failed to move the holding.
func (e *executor) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}
	walletID, err := parseID("wallet_id", req.WalletID)
	if err != nil {
		return nil, err
	}
	var tokenID *uuid.UUID
	if req.TokenID != nil {
		id, err := parseID("token_id", *req.TokenID)
		if err != nil {
			return nil, err
		}
		tokenID = &id
	}

	if _, err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	wallet, err := e.store.GetWalletByID(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, walletID)
	}
	if wallet.UserID != userID {
		return nil, fmt.Errorf("%w: wallet %s does not belong to user %s", domain.ErrValidation, walletID, userID)
	}

	if tokenID != nil {
		if _, err := e.requireToken(ctx, *tokenID); err != nil {
			return nil, err
		}
	}

	status := domain.TransactionStatusPending
	var txHash *string
	if req.TxHash != nil {
		txHash = types.StringPtr(strings.ToLower(*req.TxHash))
		status = domain.TransactionStatusConfirmed
	}

	var metadata datatypes.JSON
	if len(req.Metadata) > 0 {
		metadata = datatypes.JSON(req.Metadata)
	}

	txn, created, err := e.store.CreateTransaction(ctx, store.CreateTransactionInput{
		UserID:      userID,
		WalletID:    walletID,
		TokenID:     tokenID,
		Type:        req.Type,
		Amount:      req.Amount,
		Price:       req.Price,
		TotalValue:  req.TotalValue,
		TxHash:      txHash,
		BlockNumber: req.BlockNumber,
		Status:      status,
		Description: req.Description,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	if !created && !tradeUnapplied(txn) {
		return dto.MapTransactionToDTO(txn), nil
	}

	if err := e.applyConfirmed(ctx, txn); err != nil {
		return nil, err
	}

	return dto.MapTransactionToDTO(txn), nil
}

func (e *executor) ListTransactions(ctx context.Context, filter store.TransactionFilter) (*dto.TransactionListResponse, error) {
	txns, total, err := e.store.GetTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	resp := &dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
		Pagination:   dto.NewPagination(total, filter.Limit, filter.Offset),
	}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, *dto.MapTransactionToDTO(&txns[i]))
	}

	return resp, nil
}

// UpdateTransaction applies the update. A pending transaction that becomes
// confirmed gets the same effects as one created confirmed, and so does a
// confirmed trade whose holding update has not landed yet.
func (e *executor) UpdateTransaction(ctx context.Context, transactionID uuid.UUID, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	current, err := e.store.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, transactionID)
	}

	if req.Status != nil && !current.Status.CanTransitionTo(*req.Status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatusTransition, current.Status, *req.Status)
	}

	input := store.UpdateTransactionInput{
		Status:      req.Status,
		BlockNumber: req.BlockNumber,
		GasUsed:     req.GasUsed,
		GasPrice:    req.GasPrice,
	}
	if req.Status != nil {
		// a concurrent confirmation must not apply the trade twice
		input.ExpectedStatus = &current.Status
	}
	if req.TxHash != nil {
		input.TxHash = types.StringPtr(strings.ToLower(*req.TxHash))
	}

	txn, err := e.store.UpdateTransaction(ctx, transactionID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	confirmedNow := current.Status == domain.TransactionStatusPending && txn.Status == domain.TransactionStatusConfirmed
	if confirmedNow || tradeUnapplied(txn) {
		if err := e.applyConfirmed(ctx, txn); err != nil {
			return nil, err
		}
	} else if txn.TokenID != nil && current.Status != txn.Status {
		e.recompute(ctx, *txn.TokenID)
	}

	return dto.MapTransactionToDTO(txn), nil
}

func (e *executor) RecordGasPayment(ctx context.Context, transactionID uuid.UUID, req dto.RecordGasPaymentRequest) (*dto.GasPaymentResponse, error) {
	if e.config.PlatformWalletAddress == "" {
		return nil, apierrors.NewServiceError("Platform wallet address is not configured")
	}

	txn, err := e.store.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if txn == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, transactionID)
	}
	if types.StringNilOrEmpty(txn.TxHash) {
		return nil, fmt.Errorf("%w: transaction %s has no tx_hash", domain.ErrValidation, transactionID)
	}

	var tokenAddress *string
	if req.TokenAddress != nil {
		tokenAddress = types.StringPtr(domain.NormalizeAddress(*req.TokenAddress))
	}

	payment, err := e.store.RecordGasPayment(ctx, store.RecordGasPaymentInput{
		TransactionID: transactionID,
		TxHash:        *txn.TxHash,
		GasUsed:       req.GasUsed,
		GasPrice:      req.GasPrice,
		PaidBy:        domain.NormalizeAddress(e.config.PlatformWalletAddress),
		TokenAddress:  tokenAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record gas payment: %w", err)
	}

	return dto.MapGasPaymentToDTO(payment), nil
}

// applyConfirmed runs the effects of a confirmed transaction. Only the holding
// update can fail the call; stats and notifications are best effort.
func (e *executor) applyConfirmed(ctx context.Context, txn *schema.Transaction) error {
	if txn.Status != domain.TransactionStatusConfirmed {
		if txn.TokenID != nil {
			e.recompute(ctx, *txn.TokenID)
		}
		return nil
	}

	if txn.TokenID != nil && txn.Type.IsTrade() {
		err := e.holdings.ApplyTrade(ctx, holdings.Trade{
			TransactionID: txn.ID,
			UserID:        txn.UserID,
			TokenID:       *txn.TokenID,
			Type:          txn.Type,
			Amount:        txn.Amount,
			Price:         txn.Price,
			TotalValue:    txn.TotalValue,
		})
		if err != nil {
			return fmt.Errorf("failed to apply trade: %w", err)
		}
	}

	if txn.TokenID != nil {
		e.recompute(ctx, *txn.TokenID)
	}

	e.notify(ctx, domain.Notification{
		UserID:  txn.UserID.String(),
		Type:    domain.NotificationTypeTransactionConfirmed,
		Title:   "Transaction Confirmed",
		Message: fmt.Sprintf("Your %s has been confirmed.", strings.ToLower(string(txn.Type))),
		Data: map[string]interface{}{
			"transaction_id": txn.ID.String(),
		},
	})

	return nil
}

// tradeUnapplied reports whether txn is a confirmed trade that has not moved the holding yet
func tradeUnapplied(txn *schema.Transaction) bool {
	return txn.Status == domain.TransactionStatusConfirmed &&
		txn.TokenID != nil &&
		txn.Type.IsTrade() &&
		!txn.HoldingsApplied
}
