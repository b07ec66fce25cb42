package executor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/api/shared/constants"
	"github.com/inorbyt/chain-sync/internal/api/shared/dto"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
)

func (e *executor) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := e.store.CreateUser(ctx, store.CreateUserInput{
		Email:       req.Email,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		IsCreator:   req.IsCreator,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	e.notify(ctx, domain.Notification{
		UserID:  user.ID.String(),
		Type:    domain.NotificationTypeSystemUpdate,
		Title:   constants.WELCOME_NOTIFICATION_TITLE,
		Message: constants.WELCOME_NOTIFICATION_MESSAGE,
	})

	return dto.MapUserToDTO(user), nil
}

func (e *executor) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return dto.MapUserToDTO(user), nil
}

func (e *executor) ConnectWallet(ctx context.Context, userID uuid.UUID, req dto.ConnectWalletRequest) (*dto.WalletResponse, error) {
	if _, err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	chainID := req.ChainID
	if chainID == 0 {
		chainID = domain.DEFAULT_WALLET_CHAIN_ID
	}
	networkName := req.NetworkName
	if networkName == "" {
		networkName = domain.DEFAULT_WALLET_NETWORK_NAME
	}

	wallet, err := e.store.CreateWallet(ctx, store.CreateWalletInput{
		UserID:      userID,
		Address:     domain.NormalizeAddress(req.Address),
		WalletType:  req.WalletType,
		IsCustodial: req.IsCustodial,
		ChainID:     chainID,
		NetworkName: networkName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	e.notify(ctx, domain.Notification{
		UserID:  userID.String(),
		Type:    domain.NotificationTypeWalletConnected,
		Title:   "Wallet Connected",
		Message: fmt.Sprintf("Your %s wallet has been connected successfully.", wallet.WalletType),
		Data: map[string]interface{}{
			"wallet_id": wallet.ID.String(),
			"address":   wallet.Address,
		},
	})

	return dto.MapWalletToDTO(wallet), nil
}

func (e *executor) GetUserHoldings(ctx context.Context, userID uuid.UUID) (*dto.HoldingListResponse, error) {
	if _, err := e.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	holdings, err := e.store.GetHoldingsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}

	resp := &dto.HoldingListResponse{
		Holdings: make([]dto.HoldingResponse, 0, len(holdings)),
		Total:    len(holdings),
	}
	for i := range holdings {
		resp.Holdings = append(resp.Holdings, *dto.MapHoldingToDTO(&holdings[i]))
	}

	return resp, nil
}

func (e *executor) GetUserNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int, offset uint64) (*dto.NotificationListResponse, error) {
	notifications, total, err := e.store.GetNotificationsByUserID(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		Pagination:    dto.NewPagination(total, limit, offset),
	}
	for i := range notifications {
		resp.Notifications = append(resp.Notifications, *dto.MapNotificationToDTO(&notifications[i]))
	}

	return resp, nil
}

func (e *executor) MarkNotificationRead(ctx context.Context, notificationID uuid.UUID) error {
	if err := e.store.MarkNotificationRead(ctx, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (e *executor) requireUser(ctx context.Context, userID uuid.UUID) (*schema.User, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return user, nil
}
