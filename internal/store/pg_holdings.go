package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inorbyt/chain-sync/internal/store/schema"
)

// maxMutationAttempts bounds the retries when a concurrent writer creates the holding first
const maxMutationAttempts = 3

// GetHolding retrieves the holding of a user for a token
func (s *pgStore) GetHolding(ctx context.Context, userID, tokenID uuid.UUID) (*schema.TokenHolding, error) {
	var holding schema.TokenHolding
	found, err := first(s.db.WithContext(ctx).Where("user_id = ? AND token_id = ?", userID, tokenID), &holding)
	if err != nil {
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &holding, nil
}

// GetHoldingsByUserID lists the holdings of a user
func (s *pgStore) GetHoldingsByUserID(ctx context.Context, userID uuid.UUID) ([]schema.TokenHolding, error) {
	var holdings []schema.TokenHolding
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	return holdings, nil
}

// MutateHoldings applies every mutation in a single database transaction
func (s *pgStore) MutateHoldings(ctx context.Context, mutations ...HoldingMutation) error {
	if len(mutations) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range mutations {
			if err := mutateHolding(tx, m); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyTransactionHoldings runs the mutations of a recorded trade exactly once
func (s *pgStore) ApplyTransactionHoldings(ctx context.Context, transactionID uuid.UUID, mutations ...HoldingMutation) (bool, error) {
	applied := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&schema.Transaction{}).
			Where("id = ? AND holdings_applied = ?", transactionID, false).
			Updates(map[string]interface{}{
				"holdings_applied": true,
				"updated_at":       time.Now().UTC(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to flag transaction holdings: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		for _, m := range mutations {
			if err := mutateHolding(tx, m); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

var errHoldingCreateRace = errors.New("holding created concurrently")

func mutateHolding(tx *gorm.DB, m HoldingMutation) error {
	for attempt := 1; ; attempt++ {
		// A savepoint keeps the outer transaction usable if this attempt loses the create race
		err := tx.Transaction(func(tx *gorm.DB) error {
			return applyHoldingMutation(tx, m)
		})
		if !errors.Is(err, errHoldingCreateRace) || attempt >= maxMutationAttempts {
			return err
		}
	}
}

func applyHoldingMutation(tx *gorm.DB, m HoldingMutation) error {
	var current *schema.TokenHolding
	var holding schema.TokenHolding
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND token_id = ?", m.UserID, m.TokenID).
		First(&holding).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock holding: %w", err)
		}
	} else {
		current = &holding
	}

	change, err := m.Mutate(current)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch change.Action {
	case HoldingActionNone:
		return nil

	case HoldingActionCreate:
		if change.Holding == nil {
			return fmt.Errorf("holding create without a row")
		}
		row := *change.Holding
		row.ID = newID()
		row.UserID = m.UserID
		row.TokenID = m.TokenID
		row.IsActive = true
		row.LastSyncedAt = &now

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "token_id"}},
			DoNothing: true,
		}).Create(&row)
		if result.Error != nil {
			return fmt.Errorf("failed to create holding: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errHoldingCreateRace
		}
		return nil

	case HoldingActionUpdate:
		if current == nil || change.Holding == nil {
			return fmt.Errorf("holding update without an existing row")
		}
		err := tx.Model(&schema.TokenHolding{}).
			Where("id = ?", current.ID).
			Updates(map[string]interface{}{
				"balance":        change.Holding.Balance,
				"average_price":  change.Holding.AveragePrice,
				"total_invested": change.Holding.TotalInvested,
				"last_synced_at": now,
				"updated_at":     now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update holding: %w", err)
		}
		return nil

	case HoldingActionDelete:
		if current == nil {
			return nil
		}
		if err := tx.Delete(&schema.TokenHolding{}, "id = ?", current.ID).Error; err != nil {
			return fmt.Errorf("failed to delete holding: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown holding action: %d", change.Action)
	}
}
