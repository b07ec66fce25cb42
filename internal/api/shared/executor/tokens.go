package executor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/api/shared/dto"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
	"github.com/inorbyt/chain-sync/internal/types"
)

// defaultPerks are attached to every new token
var defaultPerks = []struct {
	title       string
	description string
	perkType    domain.PerkType
	minTokens   string
}{
	{"Exclusive Content", "Access to exclusive content and updates", domain.PerkTypeExclusiveContent, "100"},
	{"Community Access", "Join the creator's exclusive community", domain.PerkTypeCommunityAccess, "500"},
	{"Early Access", "Get early access to new content and features", domain.PerkTypeEarlyAccess, "1000"},
}

func (e *executor) CreateToken(ctx context.Context, req dto.CreateTokenRequest) (*dto.TokenResponse, error) {
	userID, err := parseID("creator_id", req.CreatorID)
	if err != nil {
		return nil, err
	}

	user, err := e.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CreatorProfile == nil {
		return nil, fmt.Errorf("%w: user %s is not a creator", domain.ErrValidation, userID)
	}

	perks := make([]store.CreatePerkInput, 0, len(defaultPerks))
	for _, p := range defaultPerks {
		perks = append(perks, store.CreatePerkInput{
			Title:             p.title,
			Description:       p.description,
			Type:              p.perkType,
			MinTokensRequired: types.StringPtr(p.minTokens),
		})
	}

	token, err := e.store.CreateToken(ctx, store.CreateTokenInput{
		CreatorID:       user.CreatorProfile.ID,
		Name:            req.Name,
		Symbol:          req.Symbol,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		TotalSupply:     req.TotalSupply,
		StartingPrice:   req.StartingPrice,
		MaxTokensPerFan: req.MaxTokensPerFan,
		Perks:           perks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	e.recompute(ctx, token.ID)

	return dto.MapTokenToDTO(token), nil
}

func (e *executor) GetToken(ctx context.Context, tokenID uuid.UUID) (*dto.TokenResponse, error) {
	token, err := e.store.GetTokenByID(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return dto.MapTokenToDTO(token), nil
}

func (e *executor) ListTokens(ctx context.Context, filter store.TokenFilter) (*dto.TokenListResponse, error) {
	tokens, total, err := e.store.GetTokens(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}

	resp := &dto.TokenListResponse{
		Tokens:     make([]dto.TokenResponse, 0, len(tokens)),
		Pagination: dto.NewPagination(total, filter.Limit, filter.Offset),
	}
	for i := range tokens {
		resp.Tokens = append(resp.Tokens, *dto.MapTokenToDTO(&tokens[i]))
	}

	return resp, nil
}

// DeployToken feeds a TokenDeployed event through the ingestor so the deployment
// is deduplicated and logged like any chain event.
func (e *executor) DeployToken(ctx context.Context, tokenID uuid.UUID, req dto.DeployTokenRequest) (*dto.TokenResponse, error) {
	token, err := e.requireToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if token.IsDeployed {
		return nil, fmt.Errorf("%w: %s", domain.ErrTokenAlreadyDeployed, tokenID)
	}

	data, err := json.Marshal(domain.TokenDeployedPayload{TokenID: tokenID.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode deployment payload: %w", err)
	}

	chain := req.Chain
	if chain == "" {
		chain = e.config.Chain
	}

	_, err = e.ingestor.Ingest(ctx, domain.ChainEvent{
		Chain:           chain,
		EventType:       domain.EventTypeTokenDeployed,
		ContractAddress: req.ContractAddress,
		BlockNumber:     req.BlockNumber,
		TransactionHash: req.TxHash,
		LogIndex:        req.LogIndex,
		Data:            data,
	})
	if err != nil {
		return nil, err
	}

	return e.GetToken(ctx, tokenID)
}

func (e *executor) GetTokenPerks(ctx context.Context, tokenID uuid.UUID) (*dto.PerkListResponse, error) {
	if _, err := e.requireToken(ctx, tokenID); err != nil {
		return nil, err
	}

	perks, err := e.store.GetPerksByTokenID(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get perks: %w", err)
	}

	resp := &dto.PerkListResponse{Perks: make([]dto.PerkResponse, 0, len(perks))}
	for i := range perks {
		resp.Perks = append(resp.Perks, *dto.MapPerkToDTO(&perks[i]))
	}

	return resp, nil
}

func (e *executor) CreatePerk(ctx context.Context, tokenID uuid.UUID, req dto.CreatePerkRequest) (*dto.PerkResponse, error) {
	token, err := e.requireToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	perk, err := e.store.CreatePerk(ctx, store.CreatePerkInput{
		CreatorID:         token.CreatorID,
		TokenID:           types.UUIDPtr(token.ID),
		Title:             req.Title,
		Description:       req.Description,
		Type:              req.Type,
		MinTokensRequired: req.MinTokensRequired,
		MaxRedemptions:    req.MaxRedemptions,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create perk: %w", err)
	}

	return dto.MapPerkToDTO(perk), nil
}

// RedeemPerk checks that the perk is active, that the user holds enough of the
// perk's token and that the redemption limit is not reached.
func (e *executor) RedeemPerk(ctx context.Context, perkID uuid.UUID, req dto.RedeemPerkRequest) (*dto.PerkRedemptionResponse, error) {
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	perk, err := e.store.GetPerkByID(ctx, perkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get perk: %w", err)
	}
	if perk == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPerkNotFound, perkID)
	}
	if !perk.IsActive {
		return nil, fmt.Errorf("%w: %s", domain.ErrPerkInactive, perkID)
	}

	if err := e.checkPerkBalance(ctx, userID, perk); err != nil {
		return nil, err
	}

	if perk.MaxRedemptions != nil && perk.CurrentRedemptions >= *perk.MaxRedemptions {
		return nil, fmt.Errorf("%w: %s", domain.ErrRedemptionLimitReached, perkID)
	}

	redemption, err := e.store.CreatePerkRedemption(ctx, store.CreatePerkRedemptionInput{
		UserID:       userID,
		PerkID:       perkID,
		Status:       domain.RedemptionStatusRedeemed,
		EnforceLimit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to redeem perk: %w", err)
	}

	e.notify(ctx, domain.Notification{
		UserID:  userID.String(),
		Type:    domain.NotificationTypePerkRedemption,
		Title:   "Perk Redeemed",
		Message: fmt.Sprintf("You have successfully redeemed %s!", perk.Title),
		Data: map[string]interface{}{
			"perk_id":       perkID.String(),
			"redemption_id": redemption.ID.String(),
		},
	})

	return dto.MapPerkRedemptionToDTO(redemption), nil
}

func (e *executor) checkPerkBalance(ctx context.Context, userID uuid.UUID, perk *schema.Perk) error {
	if perk.TokenID == nil || types.StringNilOrEmpty(perk.MinTokensRequired) {
		return nil
	}

	balance := "0"
	holding, err := e.store.GetHolding(ctx, userID, *perk.TokenID)
	if err != nil {
		return fmt.Errorf("failed to get holding: %w", err)
	}
	if holding != nil && holding.IsActive {
		balance = holding.Balance
	}

	cmp, err := types.CompareNumeric(balance, *perk.MinTokensRequired)
	if err != nil {
		return fmt.Errorf("failed to compare balance: %w", err)
	}
	if cmp < 0 {
		return fmt.Errorf("%w: holds %s, requires %s", domain.ErrInsufficientBalance, balance, *perk.MinTokensRequired)
	}

	return nil
}

func (e *executor) requireToken(ctx context.Context, tokenID uuid.UUID) (*schema.CreatorToken, error) {
	token, err := e.store.GetTokenByID(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if token == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTokenNotFound, tokenID)
	}
	return token, nil
}
