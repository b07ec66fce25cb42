package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/api/shared/constants"
	apierrors "github.com/inorbyt/chain-sync/internal/api/shared/errors"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/store"
)

// ListEventsQueryParams holds query parameters for GET /blockchain/events
type ListEventsQueryParams struct {
	ContractAddress string `form:"contract_address"`
	EventType       string `form:"event_type"`
	Processed       string `form:"processed"`

	Limit  int    `form:"limit,default=100"`
	Offset uint64 `form:"offset,default=0"`
}

// ListTokensQueryParams holds query parameters for GET /tokens
type ListTokensQueryParams struct {
	CreatorID string `form:"creator_id"`
	Deployed  string `form:"deployed"`

	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ListTransactionsQueryParams holds query parameters for GET /transactions
type ListTransactionsQueryParams struct {
	UserID  string `form:"user_id"`
	TokenID string `form:"token_id"`
	Type    string `form:"type"`
	Status  string `form:"status"`

	Limit  int    `form:"limit,default=50"`
	Offset uint64 `form:"offset,default=0"`
}

// ListNotificationsQueryParams holds query parameters for GET /users/:id/notifications
type ListNotificationsQueryParams struct {
	UnreadOnly bool `form:"unread_only,default=false"`

	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListEventsQuery parses query parameters for GET /blockchain/events
func ParseListEventsQuery(c *gin.Context) (store.BlockchainEventFilter, error) {
	var params ListEventsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return store.BlockchainEventFilter{}, apierrors.NewValidationError(err.Error())
	}

	filter := store.BlockchainEventFilter{
		ContractAddress: params.ContractAddress,
		EventType:       params.EventType,
		Limit:           capLimit(params.Limit, constants.DEFAULT_EVENTS_LIMIT),
		Offset:          params.Offset,
	}

	processed, err := parseOptionalBool("processed", params.Processed)
	if err != nil {
		return store.BlockchainEventFilter{}, err
	}
	filter.Processed = processed

	return filter, nil
}

// ParseListTokensQuery parses query parameters for GET /tokens
func ParseListTokensQuery(c *gin.Context) (store.TokenFilter, error) {
	var params ListTokensQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return store.TokenFilter{}, apierrors.NewValidationError(err.Error())
	}

	filter := store.TokenFilter{
		Limit:  capLimit(params.Limit, constants.DEFAULT_TOKENS_LIMIT),
		Offset: params.Offset,
	}

	creatorID, err := parseOptionalUUID("creator_id", params.CreatorID)
	if err != nil {
		return store.TokenFilter{}, err
	}
	filter.CreatorID = creatorID

	deployed, err := parseOptionalBool("deployed", params.Deployed)
	if err != nil {
		return store.TokenFilter{}, err
	}
	filter.Deployed = deployed

	return filter, nil
}

// ParseListTransactionsQuery parses query parameters for GET /transactions
func ParseListTransactionsQuery(c *gin.Context) (store.TransactionFilter, error) {
	var params ListTransactionsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return store.TransactionFilter{}, apierrors.NewValidationError(err.Error())
	}

	filter := store.TransactionFilter{
		Limit:  capLimit(params.Limit, constants.DEFAULT_TRANSACTIONS_LIMIT),
		Offset: params.Offset,
	}

	var err error
	if filter.UserID, err = parseOptionalUUID("user_id", params.UserID); err != nil {
		return store.TransactionFilter{}, err
	}
	if filter.TokenID, err = parseOptionalUUID("token_id", params.TokenID); err != nil {
		return store.TransactionFilter{}, err
	}

	if params.Type != "" {
		txType := domain.TransactionType(params.Type)
		if !txType.Valid() {
			return store.TransactionFilter{}, apierrors.NewValidationError(fmt.Sprintf("invalid type %q", params.Type))
		}
		filter.Type = &txType
	}
	if params.Status != "" {
		status := domain.TransactionStatus(params.Status)
		if !status.Valid() {
			return store.TransactionFilter{}, apierrors.NewValidationError(fmt.Sprintf("invalid status %q", params.Status))
		}
		filter.Status = &status
	}

	return filter, nil
}

// ParseListNotificationsQuery parses query parameters for GET /users/:id/notifications
func ParseListNotificationsQuery(c *gin.Context) (*ListNotificationsQueryParams, error) {
	var params ListNotificationsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	params.Limit = capLimit(params.Limit, constants.DEFAULT_NOTIFICATIONS_LIMIT)

	return &params, nil
}

// capLimit replaces a non-positive limit with the default and caps it at the page size
func capLimit(limit, defaultLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > constants.MAX_PAGE_SIZE {
		return constants.MAX_PAGE_SIZE
	}
	return limit
}

func parseOptionalBool(name, value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s must be a boolean", name))
	}
	return &b, nil
}

func parseOptionalUUID(name, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("%s must be a uuid", name))
	}
	return &id, nil
}
