package handler

import (
	"net/http"
	"strconv"

	"cinebox/internal/middleware"
	"cinebox/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List handles GET /me/notifications. Listing doubles as the retention
// trigger: cleanup runs before the inbox is returned.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.svc.ListInbox(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.MarkRead(userID, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListBroadcasts handles GET /broadcasts — the shared feed, capped at
// read time. Read/unread is the client's own bookkeeping.
func (h *NotificationHandler) ListBroadcasts(c *gin.Context) {
	list, err := h.svc.ListBroadcasts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"broadcasts": list})
}
