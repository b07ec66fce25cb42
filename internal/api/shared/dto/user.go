package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

// UserResponse represents a user with its creator profile and wallets
type UserResponse struct {
	ID               uuid.UUID        `json:"id"`
	Email            string           `json:"email"`
	DisplayName      string           `json:"display_name"`
	Username         string           `json:"username"`
	Bio              *string          `json:"bio,omitempty"`
	AvatarURL        *string          `json:"avatar_url,omitempty"`
	IsCreator        bool             `json:"is_creator"`
	IsVerified       bool             `json:"is_verified"`
	CreatorProfileID *uuid.UUID       `json:"creator_profile_id,omitempty"`
	Wallets          []WalletResponse `json:"wallets"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// WalletResponse represents a connected wallet
type WalletResponse struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Address     string            `json:"address"`
	WalletType  domain.WalletType `json:"wallet_type"`
	IsActive    bool              `json:"is_active"`
	IsCustodial bool              `json:"is_custodial"`
	ChainID     int               `json:"chain_id"`
	NetworkName string            `json:"network_name"`
	CreatedAt   time.Time         `json:"created_at"`
}

// HoldingResponse represents a user's balance of one token
type HoldingResponse struct {
	ID            uuid.UUID  `json:"id"`
	TokenID       uuid.UUID  `json:"token_id"`
	WalletID      uuid.UUID  `json:"wallet_id"`
	Balance       string     `json:"balance"`
	AveragePrice  string     `json:"average_price"`
	TotalInvested string     `json:"total_invested"`
	IsActive      bool       `json:"is_active"`
	LastSyncedAt  *time.Time `json:"last_synced_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HoldingListResponse lists the holdings of a user
type HoldingListResponse struct {
	Holdings []HoldingResponse `json:"holdings"`
	Total    int               `json:"total"`
}

// NotificationResponse represents a stored notification
type NotificationResponse struct {
	ID        uuid.UUID               `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	IsRead    bool                    `json:"is_read"`
	Data      json.RawMessage         `json:"data,omitempty"`
	ActionURL *string                 `json:"action_url,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// NotificationListResponse represents a page of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Pagination    Pagination             `json:"pagination"`
}

// MapUserToDTO maps a schema.User to UserResponse
func MapUserToDTO(user *schema.User) *UserResponse {
	if user == nil {
		return nil
	}

	resp := &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Username:    user.Username,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		IsCreator:   user.IsCreator,
		IsVerified:  user.IsVerified,
		Wallets:     make([]WalletResponse, 0, len(user.Wallets)),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	if user.CreatorProfile != nil {
		id := user.CreatorProfile.ID
		resp.CreatorProfileID = &id
	}
	for i := range user.Wallets {
		resp.Wallets = append(resp.Wallets, *MapWalletToDTO(&user.Wallets[i]))
	}

	return resp
}

// MapWalletToDTO maps a schema.Wallet to WalletResponse
func MapWalletToDTO(wallet *schema.Wallet) *WalletResponse {
	if wallet == nil {
		return nil
	}

	return &WalletResponse{
		ID:          wallet.ID,
		UserID:      wallet.UserID,
		Address:     wallet.Address,
		WalletType:  wallet.WalletType,
		IsActive:    wallet.IsActive,
		IsCustodial: wallet.IsCustodial,
		ChainID:     wallet.ChainID,
		NetworkName: wallet.NetworkName,
		CreatedAt:   wallet.CreatedAt,
	}
}

// MapHoldingToDTO maps a schema.TokenHolding to HoldingResponse
func MapHoldingToDTO(holding *schema.TokenHolding) *HoldingResponse {
	return &HoldingResponse{
		ID:            holding.ID,
		TokenID:       holding.TokenID,
		WalletID:      holding.WalletID,
		Balance:       holding.Balance,
		AveragePrice:  holding.AveragePrice,
		TotalInvested: holding.TotalInvested,
		IsActive:      holding.IsActive,
		LastSyncedAt:  holding.LastSyncedAt,
		UpdatedAt:     holding.UpdatedAt,
	}
}

// MapNotificationToDTO maps a schema.Notification to NotificationResponse
func MapNotificationToDTO(notification *schema.Notification) *NotificationResponse {
	var data json.RawMessage
	if len(notification.Data) > 0 {
		data = json.RawMessage(notification.Data)
	}

	return &NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		Data:      data,
		ActionURL: notification.ActionURL,
		CreatedAt: notification.CreatedAt,
	}
}
