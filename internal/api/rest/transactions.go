package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inorbyt/chain-sync/internal/api/shared/dto"
)

func (h *handler) CreateTransaction(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) ListTransactions(c *gin.Context) {
	filter, err := ParseListTransactionsQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.executor.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) UpdateTransaction(c *gin.Context) {
	transactionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) RecordGasPayment(c *gin.Context) {
	transactionID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.RecordGasPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.RecordGasPayment(c.Request.Context(), transactionID, req)
	if err != nil {
		respondError(c, err, "Failed to record gas payment")
		return
	}

	c.JSON(http.StatusCreated, resp)
}
