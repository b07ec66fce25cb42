package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

// CreateUser creates a user and, for creators, the creator profile in a single transaction
func (s *pgStore) CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error) {
	user := schema.User{
		ID:          newID(),
		Email:       input.Email,
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
		AvatarURL:   input.AvatarURL,
		IsCreator:   input.IsCreator,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// email and username are both unique, any conflict means the user is taken
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&user)
		if result.Error != nil {
			return fmt.Errorf("failed to create user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrUserTaken
		}

		if !input.IsCreator {
			return nil
		}

		profile := schema.CreatorProfile{
			ID:       newID(),
			UserID:   user.ID,
			IsPublic: true,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create creator profile: %w", err)
		}
		user.CreatorProfile = &profile

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID retrieves a user with its creator profile
func (s *pgStore) GetUserByID(ctx context.Context, id uuid.UUID) (*schema.User, error) {
	var user schema.User
	found, err := first(s.db.WithContext(ctx).Preload("CreatorProfile").Where("id = ?", id), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

// CreateWallet registers a wallet address for a user
func (s *pgStore) CreateWallet(ctx context.Context, input CreateWalletInput) (*schema.Wallet, error) {
	wallet := schema.Wallet{
		ID:          newID(),
		UserID:      input.UserID,
		Address:     input.Address,
		WalletType:  input.WalletType,
		IsActive:    true,
		IsCustodial: input.IsCustodial,
		ChainID:     input.ChainID,
		NetworkName: input.NetworkName,
	}
	if wallet.ChainID == 0 {
		wallet.ChainID = domain.DEFAULT_WALLET_CHAIN_ID
	}
	if wallet.NetworkName == "" {
		wallet.NetworkName = domain.DEFAULT_WALLET_NETWORK_NAME
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&wallet)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrWalletTaken
	}

	return &wallet, nil
}

// GetWalletByID retrieves a wallet by id
func (s *pgStore) GetWalletByID(ctx context.Context, id uuid.UUID) (*schema.Wallet, error) {
	var wallet schema.Wallet
	found, err := first(s.db.WithContext(ctx).Where("id = ?", id), &wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &wallet, nil
}

// GetWalletByAddress retrieves a wallet by its normalized address
func (s *pgStore) GetWalletByAddress(ctx context.Context, address string) (*schema.Wallet, error) {
	var wallet schema.Wallet
	found, err := first(s.db.WithContext(ctx).Where("address = ?", address), &wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet by address: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &wallet, nil
}

// GetLatestWalletByUserID retrieves the most recently created wallet of a user
func (s *pgStore) GetLatestWalletByUserID(ctx context.Context, userID uuid.UUID) (*schema.Wallet, error) {
	var wallet schema.Wallet
	found, err := first(s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC"), &wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest wallet: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &wallet, nil
}
