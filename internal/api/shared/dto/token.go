package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/aggregator"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

// TokenResponse represents a creator token and its derived statistics
type TokenResponse struct {
	ID               uuid.UUID      `json:"id"`
	CreatorID        uuid.UUID      `json:"creator_id"`
	Name             string         `json:"name"`
	Symbol           string         `json:"symbol"`
	Description      *string        `json:"description,omitempty"`
	ImageURL         *string        `json:"image_url,omitempty"`
	TotalSupply      string         `json:"total_supply"`
	CurrentSupply    string         `json:"current_supply"`
	StartingPrice    string         `json:"starting_price"`
	CurrentPrice     *string        `json:"current_price,omitempty"`
	MaxTokensPerFan  string         `json:"max_tokens_per_fan"`
	ContractAddress  *string        `json:"contract_address,omitempty"`
	DeploymentTxHash *string        `json:"deployment_tx_hash,omitempty"`
	IsDeployed       bool           `json:"is_deployed"`
	TotalHolders     int            `json:"total_holders"`
	TotalVolume      string         `json:"total_volume"`
	FloorPrice       string         `json:"floor_price"`
	Perks            []PerkResponse `json:"perks,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TokenListResponse represents a page of tokens
type TokenListResponse struct {
	Tokens     []TokenResponse `json:"tokens"`
	Pagination Pagination      `json:"pagination"`
}

// TokenStatsResponse represents freshly recomputed token statistics
type TokenStatsResponse struct {
	TokenID      uuid.UUID `json:"token_id"`
	TotalHolders int64     `json:"total_holders"`
	TotalVolume  string    `json:"total_volume"`
	FloorPrice   string    `json:"floor_price"`
}

// PerkResponse represents a perk
type PerkResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CreatorID          uuid.UUID       `json:"creator_id"`
	TokenID            *uuid.UUID      `json:"token_id,omitempty"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Type               domain.PerkType `json:"type"`
	IsActive           bool            `json:"is_active"`
	MinTokensRequired  *string         `json:"min_tokens_required,omitempty"`
	MaxRedemptions     *int            `json:"max_redemptions,omitempty"`
	CurrentRedemptions int             `json:"current_redemptions"`
	ImageURL           *string         `json:"image_url,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// PerkListResponse lists the perks of a token
type PerkListResponse struct {
	Perks []PerkResponse `json:"perks"`
}

// PerkRedemptionResponse represents a perk redemption
type PerkRedemptionResponse struct {
	ID         uuid.UUID               `json:"id"`
	UserID     uuid.UUID               `json:"user_id"`
	PerkID     uuid.UUID               `json:"perk_id"`
	Status     domain.RedemptionStatus `json:"status"`
	RedeemedAt *time.Time              `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

// MapTokenToDTO maps a schema.CreatorToken to TokenResponse
func MapTokenToDTO(token *schema.CreatorToken) *TokenResponse {
	if token == nil {
		return nil
	}

	resp := &TokenResponse{
		ID:               token.ID,
		CreatorID:        token.CreatorID,
		Name:             token.Name,
		Symbol:           token.Symbol,
		Description:      token.Description,
		ImageURL:         token.ImageURL,
		TotalSupply:      token.TotalSupply,
		CurrentSupply:    token.CurrentSupply,
		StartingPrice:    token.StartingPrice,
		CurrentPrice:     token.CurrentPrice,
		MaxTokensPerFan:  token.MaxTokensPerFan,
		ContractAddress:  token.ContractAddress,
		DeploymentTxHash: token.DeploymentTxHash,
		IsDeployed:       token.IsDeployed,
		TotalHolders:     token.TotalHolders,
		TotalVolume:      token.TotalVolume,
		FloorPrice:       token.FloorPrice,
		CreatedAt:        token.CreatedAt,
		UpdatedAt:        token.UpdatedAt,
	}
	for i := range token.Perks {
		resp.Perks = append(resp.Perks, *MapPerkToDTO(&token.Perks[i]))
	}

	return resp
}

// MapTokenStatsToDTO maps aggregator.TokenStats to TokenStatsResponse
func MapTokenStatsToDTO(stats *aggregator.TokenStats) *TokenStatsResponse {
	return &TokenStatsResponse{
		TokenID:      stats.TokenID,
		TotalHolders: stats.TotalHolders,
		TotalVolume:  stats.TotalVolume,
		FloorPrice:   stats.FloorPrice,
	}
}

// MapPerkToDTO maps a schema.Perk to PerkResponse
func MapPerkToDTO(perk *schema.Perk) *PerkResponse {
	return &PerkResponse{
		ID:                 perk.ID,
		CreatorID:          perk.CreatorID,
		TokenID:            perk.TokenID,
		Title:              perk.Title,
		Description:        perk.Description,
		Type:               perk.Type,
		IsActive:           perk.IsActive,
		MinTokensRequired:  perk.MinTokensRequired,
		MaxRedemptions:     perk.MaxRedemptions,
		CurrentRedemptions: perk.CurrentRedemptions,
		ImageURL:           perk.ImageURL,
		CreatedAt:          perk.CreatedAt,
	}
}

// MapPerkRedemptionToDTO maps a schema.PerkRedemption to PerkRedemptionResponse
func MapPerkRedemptionToDTO(redemption *schema.PerkRedemption) *PerkRedemptionResponse {
	return &PerkRedemptionResponse{
		ID:         redemption.ID,
		UserID:     redemption.UserID,
		PerkID:     redemption.PerkID,
		Status:     redemption.Status,
		RedeemedAt: redemption.RedeemedAt,
		CreatedAt:  redemption.CreatedAt,
	}
}
