package middleware

import (
	"net/http"

	"cinebox/internal/repository"

	"github.com/gin-gonic/gin"
)

// NotBanned is the moderation gate: it re-reads the ban flag on every
// guarded call, so a ban committed by the admin console takes effect on
// the very next request. A missing ledger falls through to the handler,
// which treats it as a logged no-op.
func NotBanned(ledgers *repository.LedgerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		u, err := ledgers.GetByID(userID)
		if err == nil && u.IsBanned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account suspended"})
			return
		}
		c.Next()
	}
}
