package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainBaseMainnet     Chain = "eip155:8453"
	ChainBaseSepolia     Chain = "eip155:84532"
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainBaseMainnet ||
		chain == ChainBaseSepolia ||
		chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia
}

// EventType represents the type of a chain event
type EventType string

const (
	EventTypeTokenTransfer EventType = "TokenTransfer"
	EventTypeTokenPurchase EventType = "TokenPurchase"
	EventTypePerkRedeemed  EventType = "PerkRedeemed"
	EventTypePriceUpdate   EventType = "PriceUpdate"
	EventTypeTokenDeployed EventType = "TokenDeployed"
)

// Known reports whether the event type has a handler
func (t EventType) Known() bool {
	switch t {
	case EventTypeTokenTransfer,
		EventTypeTokenPurchase,
		EventTypePerkRedeemed,
		EventTypePriceUpdate,
		EventTypeTokenDeployed:
		return true
	default:
		return false
	}
}

// ChainEvent is a single chain log as delivered by an event source.
// (TransactionHash, LogIndex) identifies the log uniquely.
type ChainEvent struct {
	Chain           Chain           `json:"chain,omitempty"`
	EventType       EventType       `json:"event_type"`
	ContractAddress string          `json:"contract_address"`
	BlockNumber     uint64          `json:"block_number"`
	TransactionHash string          `json:"transaction_hash"`
	LogIndex        uint            `json:"log_index"`
	Data            json.RawMessage `json:"data,omitempty"`
}

// Key returns the dedupe key of the event
func (e *ChainEvent) Key() string {
	return fmt.Sprintf("%s:%d", strings.ToLower(e.TransactionHash), e.LogIndex)
}

// Validate checks the event shape. Payload fields are validated by the handler.
func (e *ChainEvent) Validate() error {
	if strings.TrimSpace(string(e.EventType)) == "" {
		return fmt.Errorf("%w: event_type is required", ErrInvalidEvent)
	}
	if !IsValidAddress(e.ContractAddress) {
		return fmt.Errorf("%w: contract_address %q is not a valid address", ErrInvalidEvent, e.ContractAddress)
	}
	if !IsValidTxHash(e.TransactionHash) {
		return fmt.Errorf("%w: transaction_hash %q is not a valid hash", ErrInvalidEvent, e.TransactionHash)
	}
	if e.Chain != "" && !IsValidChain(e.Chain) {
		return fmt.Errorf("%w: unsupported chain %q", ErrInvalidEvent, e.Chain)
	}

	data := bytes.TrimSpace(e.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '{' || !json.Valid(data) {
		return fmt.Errorf("%w: data must be a JSON object", ErrInvalidEvent)
	}

	return nil
}

// Normalize returns a copy with lowercase hex fields and a non-empty payload
func (e ChainEvent) Normalize() ChainEvent {
	e.ContractAddress = NormalizeAddress(e.ContractAddress)
	e.TransactionHash = strings.ToLower(e.TransactionHash)
	data := bytes.TrimSpace(e.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		e.Data = json.RawMessage("{}")
	}
	return e
}

// TransactionType represents the kind of a platform transaction
type TransactionType string

const (
	TransactionTypeTokenPurchase  TransactionType = "TOKEN_PURCHASE"
	TransactionTypeTokenSale      TransactionType = "TOKEN_SALE"
	TransactionTypeWithdrawal     TransactionType = "WITHDRAWAL"
	TransactionTypeDeposit        TransactionType = "DEPOSIT"
	TransactionTypePerkRedemption TransactionType = "PERK_REDEMPTION"
	TransactionTypeRewardClaim    TransactionType = "REWARD_CLAIM"
	TransactionTypeGasPayment     TransactionType = "GAS_PAYMENT"
)

// Valid checks if the transaction type is one of the known values
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeTokenPurchase,
		TransactionTypeTokenSale,
		TransactionTypeWithdrawal,
		TransactionTypeDeposit,
		TransactionTypePerkRedemption,
		TransactionTypeRewardClaim,
		TransactionTypeGasPayment:
		return true
	default:
		return false
	}
}

// IsTrade reports whether the transaction moves a token holding
func (t TransactionType) IsTrade() bool {
	return t == TransactionTypeTokenPurchase || t == TransactionTypeTokenSale
}

// TransactionStatus represents the lifecycle state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// Valid checks if the status is one of the known values
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending,
		TransactionStatusConfirmed,
		TransactionStatusFailed,
		TransactionStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a status change is allowed.
// Only pending transactions move, and a status may be re-applied to itself.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if s == next {
		return true
	}
	return s == TransactionStatusPending && next != TransactionStatusPending && next.Valid()
}

// NotificationType represents the category of a user notification
type NotificationType string

const (
	NotificationTypeSystemUpdate         NotificationType = "SYSTEM_UPDATE"
	NotificationTypeWalletConnected      NotificationType = "WALLET_CONNECTED"
	NotificationTypeTransactionConfirmed NotificationType = "TRANSACTION_CONFIRMED"
	NotificationTypePerkRedemption       NotificationType = "PERK_REDEMPTION"
)

// Notification is a message for a single user
type Notification struct {
	UserID    string                 `json:"user_id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	ActionURL *string                `json:"action_url,omitempty"`
}

// PerkType represents the kind of benefit a perk grants
type PerkType string

const (
	PerkTypeExclusiveContent PerkType = "EXCLUSIVE_CONTENT"
	PerkTypeCommunityAccess  PerkType = "COMMUNITY_ACCESS"
	PerkTypeEarlyAccess      PerkType = "EARLY_ACCESS"
	PerkTypeMerchandise      PerkType = "MERCHANDISE"
	PerkTypeMeetAndGreet     PerkType = "MEET_AND_GREET"
	PerkTypeCustom           PerkType = "CUSTOM"
)

// RedemptionStatus represents the state of a perk redemption
type RedemptionStatus string

const (
	RedemptionStatusPending  RedemptionStatus = "PENDING"
	RedemptionStatusRedeemed RedemptionStatus = "REDEEMED"
	RedemptionStatusExpired  RedemptionStatus = "EXPIRED"
)

// WalletType represents how a wallet is connected
type WalletType string

const (
	WalletTypeMetamask      WalletType = "METAMASK"
	WalletTypeCoinbase      WalletType = "COINBASE"
	WalletTypeWalletConnect WalletType = "WALLET_CONNECT"
	WalletTypeEmbedded      WalletType = "EMBEDDED"
)

// Valid checks if the wallet type is one of the known values
func (t WalletType) Valid() bool {
	switch t {
	case WalletTypeMetamask, WalletTypeCoinbase, WalletTypeWalletConnect, WalletTypeEmbedded:
		return true
	default:
		return false
	}
}

// Valid checks if the perk type is one of the known values
func (t PerkType) Valid() bool {
	switch t {
	case PerkTypeExclusiveContent,
		PerkTypeCommunityAccess,
		PerkTypeEarlyAccess,
		PerkTypeMerchandise,
		PerkTypeMeetAndGreet,
		PerkTypeCustom:
		return true
	default:
		return false
	}
}
