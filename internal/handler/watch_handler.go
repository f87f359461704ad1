package handler

import (
	"net/http"

	"cinebox/internal/middleware"
	"cinebox/internal/service"

	"github.com/gin-gonic/gin"
)

type WatchHandler struct {
	rewards *service.RewardService
}

func NewWatchHandler(rewards *service.RewardService) *WatchHandler {
	return &WatchHandler{rewards: rewards}
}

// Flush handles POST /me/watch — the shell's periodic batch of elapsed
// watch seconds. The response never carries a failure: a dropped tick is
// logged server-side and the next tick retries with fresh local state.
func (h *WatchHandler) Flush(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Seconds int `json:"seconds" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.rewards.RecordWatchSeconds(userID, req.Seconds)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
