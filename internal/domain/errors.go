package domain

import (
	"errors"
	"fmt"
)

// Error classes. Concrete errors below wrap one of these so callers can branch
// with errors.Is without knowing the specific cause.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrWalletNotFound       = fmt.Errorf("wallet %w", ErrNotFound)
	ErrTokenNotFound        = fmt.Errorf("token %w", ErrNotFound)
	ErrPerkNotFound         = fmt.Errorf("perk %w", ErrNotFound)
	ErrTransactionNotFound  = fmt.Errorf("transaction %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
)

var (
	ErrInvalidEvent            = fmt.Errorf("invalid event: %w", ErrValidation)
	ErrInvalidAmount           = fmt.Errorf("invalid amount: %w", ErrValidation)
	ErrInvalidAddress          = fmt.Errorf("invalid address: %w", ErrValidation)
	ErrInvalidTransactionType  = fmt.Errorf("invalid transaction type: %w", ErrValidation)
	ErrInvalidStatusTransition = fmt.Errorf("invalid status transition: %w", ErrValidation)
	ErrPerkInactive            = fmt.Errorf("perk is not active: %w", ErrValidation)
	ErrInsufficientBalance     = fmt.Errorf("insufficient token balance: %w", ErrValidation)
	ErrRedemptionLimitReached  = fmt.Errorf("perk redemption limit reached: %w", ErrValidation)
	ErrTokenAlreadyDeployed    = fmt.Errorf("token already deployed: %w", ErrValidation)
	ErrTokenNotDeployed        = fmt.Errorf("token not deployed: %w", ErrValidation)
)

var (
	ErrSymbolTaken   = fmt.Errorf("token symbol already exists: %w", ErrConflict)
	ErrWalletTaken   = fmt.Errorf("wallet address already registered: %w", ErrConflict)
	ErrUserTaken     = fmt.Errorf("email or username already registered: %w", ErrConflict)
	ErrContractTaken = fmt.Errorf("contract address already assigned: %w", ErrConflict)
)
