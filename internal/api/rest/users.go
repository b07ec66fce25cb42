package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inorbyt/chain-sync/internal/api/shared/dto"
)

func (h *handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetUser(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.executor.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get user")
		return
	}
	if resp == nil {
		respondNotFound(c, "User not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) ConnectWallet(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.ConnectWalletRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.ConnectWallet(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to connect wallet")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetUserHoldings(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.executor.GetUserHoldings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to get holdings")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetUserNotifications(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	params, err := ParseListNotificationsQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.executor.GetUserNotifications(c.Request.Context(), userID, params.UnreadOnly, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to get notifications")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) MarkNotificationRead(c *gin.Context) {
	notificationID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.executor.MarkNotificationRead(c.Request.Context(), notificationID); err != nil {
		respondError(c, err, "Failed to mark notification read")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}
