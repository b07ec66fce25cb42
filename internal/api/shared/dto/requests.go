package dto

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/inorbyt/chain-sync/internal/api/shared/constants"
	apierrors "github.com/inorbyt/chain-sync/internal/api/shared/errors"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/types"
)

// BatchEventsRequest represents the request body for ingesting several chain events
type BatchEventsRequest struct {
	Events []domain.ChainEvent `json:"events"`
}

// Validate validates the request body
func (r *BatchEventsRequest) Validate() error {
	if r.Events == nil {
		return apierrors.NewValidationError("events is required")
	}

	if len(r.Events) > constants.MAX_EVENTS_PER_BATCH {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d events allowed", constants.MAX_EVENTS_PER_BATCH))
	}

	return nil
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	Username    string  `json:"username"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	IsCreator   bool    `json:"is_creator"`
}

// Validate validates the request body
func (r *CreateUserRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil || !strings.Contains(r.Email, "@") {
		return apierrors.NewValidationError("email must be a valid email address")
	}

	if strings.TrimSpace(r.DisplayName) == "" {
		return apierrors.NewValidationError("display_name is required")
	}

	if n := len(r.Username); n < 3 || n > 20 {
		return apierrors.NewValidationError("username must be between 3 and 20 characters")
	}

	if r.AvatarURL != nil && !isValidURL(*r.AvatarURL) {
		return apierrors.NewValidationError("avatar_url must be a valid URL")
	}

	return nil
}

// ConnectWalletRequest represents the request body for registering a wallet
type ConnectWalletRequest struct {
	Address     string            `json:"address"`
	WalletType  domain.WalletType `json:"wallet_type"`
	IsCustodial bool              `json:"is_custodial"`
	ChainID     int               `json:"chain_id,omitempty"`
	NetworkName string            `json:"network_name,omitempty"`
}

// Validate validates the request body
func (r *ConnectWalletRequest) Validate() error {
	if !domain.IsValidAddress(r.Address) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid address: %s", r.Address))
	}

	if !r.WalletType.Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("unsupported wallet_type: %s", r.WalletType))
	}

	if r.ChainID < 0 {
		return apierrors.NewValidationError("chain_id must not be negative")
	}

	return nil
}

// CreateTokenRequest represents the request body for creating a creator token.
// CreatorID is the id of a user with a creator profile.
type CreateTokenRequest struct {
	CreatorID       string  `json:"creator_id"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	Description     *string `json:"description,omitempty"`
	ImageURL        *string `json:"image_url,omitempty"`
	TotalSupply     string  `json:"total_supply,omitempty"`
	StartingPrice   string  `json:"starting_price"`
	MaxTokensPerFan string  `json:"max_tokens_per_fan,omitempty"`
}

// Validate validates the request body and fills in defaults
func (r *CreateTokenRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apierrors.NewValidationError("name is required")
	}

	if n := len(r.Symbol); n < 1 || n > 10 {
		return apierrors.NewValidationError("symbol must be between 1 and 10 characters")
	}

	if r.ImageURL != nil && !isValidURL(*r.ImageURL) {
		return apierrors.NewValidationError("image_url must be a valid URL")
	}

	if !types.IsNonNegativeNumeric(r.StartingPrice) {
		return apierrors.NewValidationError("starting_price must be a non-negative integer")
	}

	if r.TotalSupply == "" {
		r.TotalSupply = constants.DEFAULT_TOTAL_SUPPLY
	}
	if !types.IsPositiveNumeric(r.TotalSupply) {
		return apierrors.NewValidationError("total_supply must be a positive integer")
	}

	if r.MaxTokensPerFan == "" {
		r.MaxTokensPerFan = constants.DEFAULT_MAX_TOKENS_PER_FAN
	}
	if !types.IsPositiveNumeric(r.MaxTokensPerFan) {
		return apierrors.NewValidationError("max_tokens_per_fan must be a positive integer")
	}

	return nil
}

// DeployTokenRequest represents the request body for recording a token deployment
type DeployTokenRequest struct {
	ContractAddress string       `json:"contract_address"`
	TxHash          string       `json:"tx_hash"`
	BlockNumber     uint64       `json:"block_number"`
	LogIndex        uint         `json:"log_index"`
	Chain           domain.Chain `json:"chain,omitempty"`
}

// Validate validates the request body
func (r *DeployTokenRequest) Validate() error {
	if !domain.IsValidAddress(r.ContractAddress) || domain.IsZeroAddress(r.ContractAddress) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid contract_address: %s", r.ContractAddress))
	}

	if !domain.IsValidTxHash(r.TxHash) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid tx_hash: %s", r.TxHash))
	}

	if r.Chain != "" && !domain.IsValidChain(r.Chain) {
		return apierrors.NewValidationError(fmt.Sprintf("unsupported chain: %s", r.Chain))
	}

	return nil
}

// CreatePerkRequest represents the request body for adding a perk to a token
type CreatePerkRequest struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Type              domain.PerkType `json:"type"`
	MinTokensRequired *string         `json:"min_tokens_required,omitempty"`
	MaxRedemptions    *int            `json:"max_redemptions,omitempty"`
	ImageURL          *string         `json:"image_url,omitempty"`
}

// Validate validates the request body
func (r *CreatePerkRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return apierrors.NewValidationError("title is required")
	}

	if strings.TrimSpace(r.Description) == "" {
		return apierrors.NewValidationError("description is required")
	}

	if !r.Type.Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("unsupported perk type: %s", r.Type))
	}

	if r.MinTokensRequired != nil && !types.IsNonNegativeNumeric(*r.MinTokensRequired) {
		return apierrors.NewValidationError("min_tokens_required must be a non-negative integer")
	}

	if r.MaxRedemptions != nil && *r.MaxRedemptions <= 0 {
		return apierrors.NewValidationError("max_redemptions must be positive")
	}

	if r.ImageURL != nil && !isValidURL(*r.ImageURL) {
		return apierrors.NewValidationError("image_url must be a valid URL")
	}

	return nil
}

// CreateTransactionRequest represents the request body for recording a platform transaction
type CreateTransactionRequest struct {
	UserID      string                 `json:"user_id"`
	WalletID    string                 `json:"wallet_id"`
	TokenID     *string                `json:"token_id,omitempty"`
	Type        domain.TransactionType `json:"type"`
	Amount      string                 `json:"amount"`
	Price       *string                `json:"price,omitempty"`
	TotalValue  string                 `json:"total_value"`
	TxHash      *string                `json:"tx_hash,omitempty"`
	BlockNumber *string                `json:"block_number,omitempty"`
	Description *string                `json:"description,omitempty"`
	Metadata    json.RawMessage        `json:"metadata,omitempty"`
}

// Validate validates the request body
func (r *CreateTransactionRequest) Validate() error {
	if !r.Type.Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("unsupported transaction type: %s", r.Type))
	}

	if !types.IsNonNegativeNumeric(r.Amount) {
		return apierrors.NewValidationError("amount must be a non-negative integer")
	}

	if r.Price != nil && !types.IsNonNegativeNumeric(*r.Price) {
		return apierrors.NewValidationError("price must be a non-negative integer")
	}

	if !types.IsNonNegativeNumeric(r.TotalValue) {
		return apierrors.NewValidationError("total_value must be a non-negative integer")
	}

	if r.TxHash != nil && !domain.IsValidTxHash(*r.TxHash) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid tx_hash: %s", *r.TxHash))
	}

	if r.BlockNumber != nil && !types.IsNonNegativeNumeric(*r.BlockNumber) {
		return apierrors.NewValidationError("block_number must be a non-negative integer")
	}

	if r.Type.IsTrade() && r.TokenID == nil {
		return apierrors.NewValidationError("token_id is required for token purchases and sales")
	}

	if len(r.Metadata) > 0 && !json.Valid(r.Metadata) {
		return apierrors.NewValidationError("metadata must be valid JSON")
	}

	return nil
}

// UpdateTransactionRequest represents the request body for updating a transaction
type UpdateTransactionRequest struct {
	Status      *domain.TransactionStatus `json:"status,omitempty"`
	TxHash      *string                   `json:"tx_hash,omitempty"`
	BlockNumber *string                   `json:"block_number,omitempty"`
	GasUsed     *string                   `json:"gas_used,omitempty"`
	GasPrice    *string                   `json:"gas_price,omitempty"`
}

// Validate validates the request body
func (r *UpdateTransactionRequest) Validate() error {
	if r.Status == nil && r.TxHash == nil && r.BlockNumber == nil && r.GasUsed == nil && r.GasPrice == nil {
		return apierrors.NewValidationError("at least one field is required")
	}

	if r.Status != nil && !r.Status.Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("unsupported status: %s", *r.Status))
	}

	if r.TxHash != nil && !domain.IsValidTxHash(*r.TxHash) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid tx_hash: %s", *r.TxHash))
	}

	for name, v := range map[string]*string{
		"block_number": r.BlockNumber,
		"gas_used":     r.GasUsed,
		"gas_price":    r.GasPrice,
	} {
		if v != nil && !types.IsNonNegativeNumeric(*v) {
			return apierrors.NewValidationError(fmt.Sprintf("%s must be a non-negative integer", name))
		}
	}

	return nil
}

// RecordGasPaymentRequest represents the request body for tracking gas paid for a transaction
type RecordGasPaymentRequest struct {
	GasUsed      string  `json:"gas_used"`
	GasPrice     string  `json:"gas_price"`
	TokenAddress *string `json:"token_address,omitempty"`
}

// Validate validates the request body
func (r *RecordGasPaymentRequest) Validate() error {
	if !types.IsNonNegativeNumeric(r.GasUsed) {
		return apierrors.NewValidationError("gas_used must be a non-negative integer")
	}

	if !types.IsNonNegativeNumeric(r.GasPrice) {
		return apierrors.NewValidationError("gas_price must be a non-negative integer")
	}

	if r.TokenAddress != nil && !domain.IsValidAddress(*r.TokenAddress) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid token_address: %s", *r.TokenAddress))
	}

	return nil
}

// RedeemPerkRequest represents the request body for redeeming a perk
type RedeemPerkRequest struct {
	UserID string `json:"user_id"`
}

// Validate validates the request body
func (r *RedeemPerkRequest) Validate() error {
	if r.UserID == "" {
		return apierrors.NewValidationError("user_id is required")
	}
	return nil
}

func isValidURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
