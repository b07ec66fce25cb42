package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/api/shared/dto"
	"github.com/inorbyt/chain-sync/internal/api/shared/executor"
	"github.com/inorbyt/chain-sync/internal/domain"
	"github.com/inorbyt/chain-sync/internal/ingestor"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// IngestEvent stores and handles a single chain event
	// POST /api/v1/blockchain/events
	IngestEvent(c *gin.Context)

	// ProcessEventBatch ingests a batch of chain events
	// POST /api/v1/blockchain/events/batch and PUT /api/v1/blockchain/events
	ProcessEventBatch(c *gin.Context)

	// ListEvents lists stored chain events
	// GET /api/v1/blockchain/events?contract_address=<address>&event_type=<type>&processed=<bool>&limit=<limit>&offset=<offset>
	ListEvents(c *gin.Context)

	// RecoverEvents retries unprocessed chain events
	// POST /api/v1/blockchain/events/recover
	RecoverEvents(c *gin.Context)

	// RecomputeTokenStats recomputes holder count, volume and floor price of a token
	// POST /api/v1/tokens/:id/stats/recompute
	RecomputeTokenStats(c *gin.Context)

	// POST /api/v1/users
	CreateUser(c *gin.Context)
	// GET /api/v1/users/:id
	GetUser(c *gin.Context)
	// POST /api/v1/users/:id/wallets
	ConnectWallet(c *gin.Context)
	// GET /api/v1/users/:id/holdings
	GetUserHoldings(c *gin.Context)
	// GET /api/v1/users/:id/notifications?unread_only=<bool>&limit=<limit>&offset=<offset>
	GetUserNotifications(c *gin.Context)
	// POST /api/v1/notifications/:id/read
	MarkNotificationRead(c *gin.Context)

	// POST /api/v1/tokens
	CreateToken(c *gin.Context)
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)
	// GET /api/v1/tokens?creator_id=<id>&deployed=<bool>&limit=<limit>&offset=<offset>
	ListTokens(c *gin.Context)
	// POST /api/v1/tokens/:id/deploy
	DeployToken(c *gin.Context)
	// GET /api/v1/tokens/:id/perks
	GetTokenPerks(c *gin.Context)
	// POST /api/v1/tokens/:id/perks
	CreatePerk(c *gin.Context)
	// POST /api/v1/perks/:id/redeem
	RedeemPerk(c *gin.Context)

	// POST /api/v1/transactions
	CreateTransaction(c *gin.Context)
	// GET /api/v1/transactions?user_id=<id>&token_id=<id>&type=<type>&status=<status>&limit=<limit>&offset=<offset>
	ListTransactions(c *gin.Context)
	// PUT /api/v1/transactions/:id
	UpdateTransaction(c *gin.Context)
	// POST /api/v1/transactions/:id/gas
	RecordGasPayment(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// IngestEvent answers 201 when the event was handled, 200 for a duplicate and
// 202 when it was stored but its handler failed.
func (h *handler) IngestEvent(c *gin.Context) {
	var event domain.ChainEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.IngestEvent(c.Request.Context(), event)
	if err != nil {
		respondError(c, err, "Failed to ingest event")
		return
	}

	c.JSON(ingestStatusCode(resp.Status), resp)
}

func ingestStatusCode(status ingestor.Status) int {
	switch status {
	case ingestor.StatusProcessed:
		return http.StatusCreated
	case ingestor.StatusDuplicate:
		return http.StatusOK
	default:
		return http.StatusAccepted
	}
}

func (h *handler) ProcessEventBatch(c *gin.Context) {
	var req dto.BatchEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.executor.ProcessEventBatch(c.Request.Context(), req.Events)
	if err != nil {
		respondError(c, err, "Failed to process events")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) ListEvents(c *gin.Context) {
	filter, err := ParseListEventsQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.executor.ListEvents(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) RecoverEvents(c *gin.Context) {
	resp, err := h.executor.RecoverEvents(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to recover events")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) RecomputeTokenStats(c *gin.Context) {
	tokenID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.executor.RecomputeTokenStats(c.Request.Context(), tokenID)
	if err != nil {
		respondError(c, err, "Failed to recompute token stats")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "chain-sync-api",
	})
}

// uuidParam reads a uuid path parameter, responding 400 when it is malformed
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "Invalid "+name, "must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes and validates a request body, responding 400 on failure
func bindJSON(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return false
	}
	return true
}
