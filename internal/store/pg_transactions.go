package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
	"github.com/inorbyt/chain-sync/internal/types"
)

const maxTransactionPageSize = 100

// CreateTransaction records a transaction, deduplicated on tx_hash when one is given
func (s *pgStore) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*schema.Transaction, bool, error) {
	status := input.Status
	if status == "" {
		status = domain.TransactionStatusPending
	}

	txn := schema.Transaction{
		ID:          newID(),
		UserID:      input.UserID,
		WalletID:    input.WalletID,
		TokenID:     input.TokenID,
		Type:        input.Type,
		Amount:      input.Amount,
		Price:       input.Price,
		TotalValue:  input.TotalValue,
		TxHash:      input.TxHash,
		BlockNumber: input.BlockNumber,
		Status:      status,
		Description: input.Description,
		Metadata:    input.Metadata,
	}

	if types.StringNilOrEmpty(input.TxHash) {
		txn.TxHash = nil
		if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
			return nil, false, fmt.Errorf("failed to create transaction: %w", err)
		}
		return &txn, true, nil
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_hash"}},
		DoNothing: true,
	}).Create(&txn)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to create transaction: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return &txn, true, nil
	}

	var existing schema.Transaction
	if err := s.db.WithContext(ctx).Where("tx_hash = ?", *input.TxHash).First(&existing).Error; err != nil {
		return nil, false, fmt.Errorf("failed to get existing transaction: %w", err)
	}

	return &existing, false, nil
}

// GetTransactionByID retrieves a transaction by id
func (s *pgStore) GetTransactionByID(ctx context.Context, id uuid.UUID) (*schema.Transaction, error) {
	var txn schema.Transaction
	found, err := first(s.db.WithContext(ctx).Where("id = ?", id), &txn)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &txn, nil
}

// GetTransactions lists transactions matching the filter, newest first, with the total count
func (s *pgStore) GetTransactions(ctx context.Context, filter TransactionFilter) ([]schema.Transaction, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Transaction{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.TokenID != nil {
		query = query.Where("token_id = ?", *filter.TokenID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txns []schema.Transaction
	err := query.
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(filter.Limit, maxTransactionPageSize)).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&txns).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return txns, uint64(total), nil //nolint:gosec,G115
}

// UpdateTransaction applies a status change and chain details to a transaction
func (s *pgStore) UpdateTransaction(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*schema.Transaction, error) {
	var txn schema.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&txn).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return fmt.Errorf("failed to lock transaction: %w", err)
		}

		if input.ExpectedStatus != nil && txn.Status != *input.ExpectedStatus {
			return fmt.Errorf("%w: transaction %s is %s, expected %s", domain.ErrConflict, id, txn.Status, *input.ExpectedStatus)
		}

		updates := map[string]interface{}{}
		if input.Status != nil {
			if !txn.Status.CanTransitionTo(*input.Status) {
				return fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatusTransition, txn.Status, *input.Status)
			}
			updates["status"] = *input.Status
			txn.Status = *input.Status
		}
		if input.TxHash != nil {
			updates["tx_hash"] = *input.TxHash
			txn.TxHash = input.TxHash
		}
		if input.BlockNumber != nil {
			updates["block_number"] = *input.BlockNumber
			txn.BlockNumber = input.BlockNumber
		}
		if input.GasUsed != nil {
			updates["gas_used"] = *input.GasUsed
			txn.GasUsed = input.GasUsed
		}
		if input.GasPrice != nil {
			updates["gas_price"] = *input.GasPrice
			txn.GasPrice = input.GasPrice
		}
		if len(updates) == 0 {
			return nil
		}

		txn.UpdatedAt = time.Now().UTC()
		updates["updated_at"] = txn.UpdatedAt
		if err := tx.Model(&schema.Transaction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// RecordGasPayment stores the gas cost of a transaction and copies gas details onto it
func (s *pgStore) RecordGasPayment(ctx context.Context, input RecordGasPaymentInput) (*schema.GasPayment, error) {
	amount, err := types.MulNumeric(input.GasUsed, input.GasPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: gas: %v", domain.ErrInvalidAmount, err)
	}

	payment := schema.GasPayment{
		ID:              newID(),
		TransactionHash: input.TxHash,
		Amount:          amount,
		TokenAddress:    input.TokenAddress,
		PaidBy:          input.PaidBy,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&schema.Transaction{}).
			Where("id = ?", input.TransactionID).
			Updates(map[string]interface{}{
				"gas_used":   input.GasUsed,
				"gas_price":  input.GasPrice,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update transaction gas: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrTransactionNotFound
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "paid_by", "token_address"}),
		}).Create(&payment).Error
		if err != nil {
			return fmt.Errorf("failed to record gas payment: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}
