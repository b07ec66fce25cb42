package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

// TransactionResponse represents a platform transaction
type TransactionResponse struct {
	ID          uuid.UUID                `json:"id"`
	UserID      uuid.UUID                `json:"user_id"`
	WalletID    uuid.UUID                `json:"wallet_id"`
	TokenID     *uuid.UUID               `json:"token_id,omitempty"`
	Type        domain.TransactionType   `json:"type"`
	Amount      string                   `json:"amount"`
	Price       *string                  `json:"price,omitempty"`
	TotalValue  string                   `json:"total_value"`
	TxHash      *string                  `json:"tx_hash,omitempty"`
	BlockNumber *string                  `json:"block_number,omitempty"`
	GasUsed     *string                  `json:"gas_used,omitempty"`
	GasPrice    *string                  `json:"gas_price,omitempty"`
	Status      domain.TransactionStatus `json:"status"`
	Description *string                  `json:"description,omitempty"`
	Metadata    json.RawMessage          `json:"metadata,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// TransactionListResponse represents a page of transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

// GasPaymentResponse represents gas paid by the platform wallet
type GasPaymentResponse struct {
	ID              uuid.UUID `json:"id"`
	TransactionHash string    `json:"transaction_hash"`
	Amount          string    `json:"amount"`
	TokenAddress    *string   `json:"token_address,omitempty"`
	PaidBy          string    `json:"paid_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// MapTransactionToDTO maps a schema.Transaction to TransactionResponse
func MapTransactionToDTO(txn *schema.Transaction) *TransactionResponse {
	if txn == nil {
		return nil
	}

	var metadata json.RawMessage
	if len(txn.Metadata) > 0 {
		metadata = json.RawMessage(txn.Metadata)
	}

	return &TransactionResponse{
		ID:          txn.ID,
		UserID:      txn.UserID,
		WalletID:    txn.WalletID,
		TokenID:     txn.TokenID,
		Type:        txn.Type,
		Amount:      txn.Amount,
		Price:       txn.Price,
		TotalValue:  txn.TotalValue,
		TxHash:      txn.TxHash,
		BlockNumber: txn.BlockNumber,
		GasUsed:     txn.GasUsed,
		GasPrice:    txn.GasPrice,
		Status:      txn.Status,
		Description: txn.Description,
		Metadata:    metadata,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}

// MapGasPaymentToDTO maps a schema.GasPayment to GasPaymentResponse
func MapGasPaymentToDTO(payment *schema.GasPayment) *GasPaymentResponse {
	return &GasPaymentResponse{
		ID:              payment.ID,
		TransactionHash: payment.TransactionHash,
		Amount:          payment.Amount,
		TokenAddress:    payment.TokenAddress,
		PaidBy:          payment.PaidBy,
		CreatedAt:       payment.CreatedAt,
	}
}
