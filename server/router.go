package server

import (
	"context"
	"net/http"
	"time"

	"oneaccord/database"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes registered. db may be
// nil in tests; the health check then skips the ping.
func NewRouter(h *Handlers, db *database.DB) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", h.signUp)
			users.GET("/lookup", h.lookupUser)
			users.GET("/search", h.searchUsers)
			users.GET("/:id", h.getUser)
			users.PUT("/:id", h.updateProfile)
			users.POST("/:id/onboarding", h.completeOnboarding)
			users.POST("/:id/login", h.login)
			users.GET("/:id/keys", h.getKeys)
			users.POST("/:id/keys", h.issueKey)
			users.GET("/:id/wallet", h.getWallet)
			users.POST("/:id/wallet", h.createWallet)
			users.GET("/:id/transfers", h.getTransfers)
			users.GET("/:id/transfers/pending", h.getPendingTransfers)
			users.GET("/:id/conversations", h.getConversations)
			users.GET("/:id/conversations/:partnerID", h.getConversationHistory)
			users.POST("/:id/deposits", h.recordDeposit)
			users.POST("/:id/withdrawals", h.recordWithdrawal)
		}

		transfers := v1.Group("/transfers")
		{
			transfers.POST("", h.createTransfer)
			transfers.POST("/requests", h.createPaymentRequest)
			transfers.POST("/:id/accept", h.acceptTransfer)
			transfers.POST("/:id/decline", h.declineTransfer)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", h.getFeed)
			posts.POST("", h.createPost)
			posts.POST("/:id/like", h.likePost)
			posts.GET("/:id/comments", h.getComments)
			posts.POST("/:id/comments", h.createComment)
		}
	}

	return r
}
