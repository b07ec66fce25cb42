package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inorbyt/chain-sync/internal/api/shared/dto"
)

func (h *handler) CreateToken(c *gin.Context) {
	var req dto.CreateTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.CreateToken(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create token")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetToken(c *gin.Context) {
	tokenID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.executor.GetToken(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to get token")
		return
	}
	if resp == nil {
		respondNotFound(c, "Token not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) ListTokens(c *gin.Context) {
	filter, err := ParseListTokensQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.executor.ListTokens(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list tokens")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) DeployToken(c *gin.Context) {
	tokenID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.DeployTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.DeployToken(c.Request.Context(), tokenID, req)
	if err != nil {
		respondError(c, err, "Failed to deploy token")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetTokenPerks(c *gin.Context) {
	tokenID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.executor.GetTokenPerks(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to get perks")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) CreatePerk(c *gin.Context) {
	tokenID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreatePerkRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.CreatePerk(c.Request.Context(), tokenID, req)
	if err != nil {
		respondError(c, err, "Failed to create perk")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) RedeemPerk(c *gin.Context) {
	perkID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.RedeemPerkRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.executor.RedeemPerk(c.Request.Context(), perkID, req)
	if err != nil {
		respondError(c, err, "Failed to redeem perk")
		return
	}

	c.JSON(http.StatusCreated, resp)
}
