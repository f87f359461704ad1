package handler

import (
	"net/http"
	"strconv"

	"cinebox/internal/middleware"
	"cinebox/internal/service"

	"github.com/gin-gonic/gin"
)

type PresenceHandler struct {
	presence *service.PresenceService
}

func NewPresenceHandler(presence *service.PresenceService) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

// Heartbeat handles POST /me/heartbeat. Best-effort by contract: the
// handler acknowledges before knowing whether the write stuck.
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	h.presence.Heartbeat(middleware.GetUserID(c))
	c.Status(http.StatusNoContent)
}

// Get handles GET /users/:id/presence — the derived online/recency view.
func (h *PresenceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.presence.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusOK, p) // Unknown, not an error to the viewer
		return
	}
	c.JSON(http.StatusOK, p)
}
