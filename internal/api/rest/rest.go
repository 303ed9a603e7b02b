package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/seedgarden/blessing-engine/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Eligibility and proofs (public read access)
		v1.GET("/eligibility/:address", handler.GetEligibility)
		v1.GET("/proofs/:address", handler.GetProof)

		// Leaderboard (public read access)
		v1.GET("/leaderboard", handler.GetLeaderboard)
		v1.GET("/leaderboard/:address", handler.GetWalletScore)

		// Snapshot inspection (public read access)
		v1.GET("/snapshots/latest", handler.GetLatestSnapshot)

		// Blessing confirmation from the submission service (requires authentication)
		v1.POST("/blessings/confirm", middleware.Auth(authCfg), handler.ConfirmBlessing)

		// Snapshot administration (requires authentication)
		v1.POST("/snapshots", middleware.Auth(authCfg), handler.TriggerSnapshot)
		v1.POST("/snapshots/rollback", middleware.Auth(authCfg), handler.RollbackSnapshot)
	}
}
