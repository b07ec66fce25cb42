package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inorbyt/chain-sync/internal/api/middleware"
	"github.com/inorbyt/chain-sync/internal/ratelimit"
)

// SetupRoutes configures all REST API routes. Writes require authentication.
// Reads accept it optionally.
// limiter may be nil when rate limiting is disabled.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, limiter ratelimit.Limiter) {
	// Health check and metrics (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var limit []gin.HandlerFunc
	if limiter != nil {
		limit = append(limit, middleware.RateLimit(limiter))
	}

	v1 := router.Group("/api/v1")

	// reads are public; a valid credential only changes the rate limit key
	reads := v1.Group("", append([]gin.HandlerFunc{middleware.OptionalAuth(authCfg)}, limit...)...)
	{
		reads.GET("/blockchain/events", handler.ListEvents)

		reads.GET("/users/:id", handler.GetUser)
		reads.GET("/users/:id/holdings", handler.GetUserHoldings)
		reads.GET("/users/:id/notifications", handler.GetUserNotifications)

		reads.GET("/tokens", handler.ListTokens)
		reads.GET("/tokens/:id", handler.GetToken)
		reads.GET("/tokens/:id/perks", handler.GetTokenPerks)

		reads.GET("/transactions", handler.ListTransactions)
	}

	// auth runs first so the limiter can key on the authenticated subject
	writes := v1.Group("", append([]gin.HandlerFunc{middleware.Auth(authCfg)}, limit...)...)
	{
		writes.POST("/blockchain/events", handler.IngestEvent)
		writes.POST("/blockchain/events/batch", handler.ProcessEventBatch)
		writes.PUT("/blockchain/events", handler.ProcessEventBatch)
		writes.POST("/blockchain/events/recover", handler.RecoverEvents)

		writes.POST("/users", handler.CreateUser)
		writes.POST("/users/:id/wallets", handler.ConnectWallet)
		writes.POST("/notifications/:id/read", handler.MarkNotificationRead)

		writes.POST("/tokens", handler.CreateToken)
		writes.POST("/tokens/:id/deploy", handler.DeployToken)
		writes.POST("/tokens/:id/perks", handler.CreatePerk)
		writes.POST("/tokens/:id/stats/recompute", handler.RecomputeTokenStats)
		writes.POST("/perks/:id/redeem", handler.RedeemPerk)

		writes.POST("/transactions", handler.CreateTransaction)
		writes.PUT("/transactions/:id", handler.UpdateTransaction)
		writes.POST("/transactions/:id/gas", handler.RecordGasPayment)
	}
}
