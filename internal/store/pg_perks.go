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
)

func newPerk(input CreatePerkInput) schema.Perk {
	return schema.Perk{
		ID:                newID(),
		CreatorID:         input.CreatorID,
		TokenID:           input.TokenID,
		Title:             input.Title,
		Description:       input.Description,
		Type:              input.Type,
		IsActive:          true,
		MinTokensRequired: input.MinTokensRequired,
		MaxRedemptions:    input.MaxRedemptions,
		ImageURL:          input.ImageURL,
	}
}

// CreatePerk creates a perk for a token
func (s *pgStore) CreatePerk(ctx context.Context, input CreatePerkInput) (*schema.Perk, error) {
	perk := newPerk(input)
	if err := s.db.WithContext(ctx).Create(&perk).Error; err != nil {
		return nil, fmt.Errorf("failed to create perk: %w", err)
	}

	return &perk, nil
}

// GetPerkByID retrieves a perk by id
func (s *pgStore) GetPerkByID(ctx context.Context, id uuid.UUID) (*schema.Perk, error) {
	var perk schema.Perk
	found, err := first(s.db.WithContext(ctx).Where("id = ?", id), &perk)
	if err != nil {
		return nil, fmt.Errorf("failed to get perk: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &perk, nil
}

// GetPerksByTokenID lists the perks of a token
func (s *pgStore) GetPerksByTokenID(ctx context.Context, tokenID uuid.UUID) ([]schema.Perk, error) {
	var perks []schema.Perk
	err := s.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("created_at ASC, id ASC").
		Find(&perks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get perks: %w", err)
	}

	return perks, nil
}

// CreatePerkRedemption records a redemption and increments the perk's redemption counter atomically
func (s *pgStore) CreatePerkRedemption(ctx context.Context, input CreatePerkRedemptionInput) (*schema.PerkRedemption, error) {
	status := input.Status
	if status == "" {
		status = domain.RedemptionStatusRedeemed
	}
	redeemedAt := input.RedeemedAt
	if redeemedAt == nil && status == domain.RedemptionStatusRedeemed {
		now := time.Now().UTC()
		redeemedAt = &now
	}

	redemption := schema.PerkRedemption{
		ID:         newID(),
		UserID:     input.UserID,
		PerkID:     input.PerkID,
		Status:     status,
		RedeemedAt: redeemedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var perk schema.Perk
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.PerkID).
			First(&perk).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPerkNotFound
			}
			return fmt.Errorf("failed to lock perk: %w", err)
		}

		if input.EnforceLimit && perk.MaxRedemptions != nil && perk.CurrentRedemptions >= *perk.MaxRedemptions {
			return domain.ErrRedemptionLimitReached
		}

		if err := tx.Create(&redemption).Error; err != nil {
			return fmt.Errorf("failed to create perk redemption: %w", err)
		}

		err = tx.Model(&schema.Perk{}).
			Where("id = ?", perk.ID).
			Updates(map[string]interface{}{
				"current_redemptions": gorm.Expr("current_redemptions + 1"),
				"updated_at":          time.Now().UTC(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to increment perk redemptions: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &redemption, nil
}
