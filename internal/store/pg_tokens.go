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

const maxTokenPageSize = 100

// CreateToken creates a creator token together with its perks
func (s *pgStore) CreateToken(ctx context.Context, input CreateTokenInput) (*schema.CreatorToken, error) {
	price := input.StartingPrice
	token := schema.CreatorToken{
		ID:              newID(),
		CreatorID:       input.CreatorID,
		Name:            input.Name,
		Symbol:          input.Symbol,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		TotalSupply:     input.TotalSupply,
		StartingPrice:   input.StartingPrice,
		CurrentPrice:    &price,
		FloorPrice:      input.StartingPrice,
		MaxTokensPerFan: input.MaxTokensPerFan,
		TotalVolume:     "0",
		CurrentSupply:   "0",
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoNothing: true,
		}).Omit(clause.Associations).Create(&token)
		if result.Error != nil {
			return fmt.Errorf("failed to create token: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrSymbolTaken
		}

		if len(input.Perks) == 0 {
			return nil
		}

		perks := make([]schema.Perk, 0, len(input.Perks))
		for _, p := range input.Perks {
			perk := newPerk(p)
			perk.TokenID = &token.ID
			perk.CreatorID = token.CreatorID
			perks = append(perks, perk)
		}
		if err := tx.Create(&perks).Error; err != nil {
			return fmt.Errorf("failed to create default perks: %w", err)
		}
		token.Perks = perks

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// GetTokenByID retrieves a token by id
func (s *pgStore) GetTokenByID(ctx context.Context, id uuid.UUID) (*schema.CreatorToken, error) {
	var token schema.CreatorToken
	found, err := first(s.db.WithContext(ctx).Where("id = ?", id), &token)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &token, nil
}

// GetTokenByContractAddress retrieves a deployed token by contract address
func (s *pgStore) GetTokenByContractAddress(ctx context.Context, contractAddress string) (*schema.CreatorToken, error) {
	var token schema.CreatorToken
	found, err := first(s.db.WithContext(ctx).Where("contract_address = ?", contractAddress), &token)
	if err != nil {
		return nil, fmt.Errorf("failed to get token by contract address: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &token, nil
}

// GetTokens lists tokens matching the filter with the total count
func (s *pgStore) GetTokens(ctx context.Context, filter TokenFilter) ([]schema.CreatorToken, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.CreatorToken{})

	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.Deployed != nil {
		query = query.Where("is_deployed = ?", *filter.Deployed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	var tokens []schema.CreatorToken
	err := query.
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(filter.Limit, maxTokenPageSize)).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&tokens).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get tokens: %w", err)
	}

	return tokens, uint64(total), nil //nolint:gosec,G115
}

// MarkTokenDeployed records the contract address and deployment transaction of a token.
// Re-applying the same contract address is a no-op.
func (s *pgStore) MarkTokenDeployed(ctx context.Context, tokenID uuid.UUID, contractAddress string, txHash string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var token schema.CreatorToken
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", tokenID).
			First(&token).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTokenNotFound
			}
			return fmt.Errorf("failed to lock token: %w", err)
		}

		if token.IsDeployed {
			if token.ContractAddress != nil && *token.ContractAddress == contractAddress {
				return nil
			}
			return domain.ErrTokenAlreadyDeployed
		}

		var taken int64
		err = tx.Model(&schema.CreatorToken{}).
			Where("contract_address = ? AND id <> ?", contractAddress, tokenID).
			Count(&taken).Error
		if err != nil {
			return fmt.Errorf("failed to check contract address: %w", err)
		}
		if taken > 0 {
			return domain.ErrContractTaken
		}

		err = tx.Model(&schema.CreatorToken{}).
			Where("id = ?", tokenID).
			Updates(map[string]interface{}{
				"contract_address":   contractAddress,
				"deployment_tx_hash": txHash,
				"is_deployed":        true,
				"updated_at":         time.Now().UTC(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to mark token deployed: %w", err)
		}

		return nil
	})
}

// SetTokenPriceByContract sets current_price on every token with the contract address
func (s *pgStore) SetTokenPriceByContract(ctx context.Context, contractAddress string, price string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.CreatorToken{}).
		Where("contract_address = ?", contractAddress).
		Updates(map[string]interface{}{
			"current_price": price,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update token price: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// UpdateTokenStats overwrites the derived statistics of a token
func (s *pgStore) UpdateTokenStats(ctx context.Context, tokenID uuid.UUID, stats TokenStatsInput) error {
	result := s.db.WithContext(ctx).
		Model(&schema.CreatorToken{}).
		Where("id = ?", tokenID).
		Updates(map[string]interface{}{
			"total_holders": stats.TotalHolders,
			"total_volume":  stats.TotalVolume,
			"floor_price":   stats.FloorPrice,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update token stats: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTokenNotFound
	}

	return nil
}

// GetDeployedTokenIDs lists the ids of every deployed token
func (s *pgStore) GetDeployedTokenIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&schema.CreatorToken{}).
		Where("is_deployed = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get deployed token ids: %w", err)
	}

	return ids, nil
}

// GetDeployedContractAddresses lists the contract address of every deployed token
func (s *pgStore) GetDeployedContractAddresses(ctx context.Context) ([]string, error) {
	var addresses []string
	err := s.db.WithContext(ctx).
		Model(&schema.CreatorToken{}).
		Where("is_deployed = ? AND contract_address IS NOT NULL", true).
		Order("contract_address ASC").
		Pluck("contract_address", &addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get deployed contract addresses: %w", err)
	}

	return addresses, nil
}

// CountActiveHoldings counts active holdings of a token
func (s *pgStore) CountActiveHoldings(ctx context.Context, tokenID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.TokenHolding{}).
		Where("token_id = ? AND is_active = ?", tokenID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active holdings: %w", err)
	}

	return count, nil
}

// SumConfirmedVolume sums total_value over confirmed transactions of a token
func (s *pgStore) SumConfirmedVolume(ctx context.Context, tokenID uuid.UUID) (string, error) {
	var volume string
	// numeric is cast to text so no precision is lost on the way to Go
	err := s.db.WithContext(ctx).
		Model(&schema.Transaction{}).
		Select("COALESCE(SUM(total_value), 0)::text").
		Where("token_id = ? AND status = ?", tokenID, domain.TransactionStatusConfirmed).
		Scan(&volume).Error
	if err != nil {
		return "", fmt.Errorf("failed to sum confirmed volume: %w", err)
	}

	return volume, nil
}

// GetRecentConfirmedPrices returns the prices of the most recent confirmed transactions with a positive price
func (s *pgStore) GetRecentConfirmedPrices(ctx context.Context, tokenID uuid.UUID, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	var prices []string
	err := s.db.WithContext(ctx).
		Model(&schema.Transaction{}).
		Where("token_id = ? AND status = ? AND price IS NOT NULL AND price > 0", tokenID, domain.TransactionStatusConfirmed).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Pluck("price::text", &prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent confirmed prices: %w", err)
	}

	return prices, nil
}
