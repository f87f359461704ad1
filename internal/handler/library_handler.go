package handler

import (
	"net/http"
	"time"

	"cinebox/internal/middleware"
	"cinebox/internal/repository"

	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	repo *repository.LibraryRepository
}

func NewLibraryHandler(repo *repository.LibraryRepository) *LibraryHandler {
	return &LibraryHandler{repo: repo}
}

// ToggleSaved handles POST /me/saved/toggle. The response reports the
// store's converged state, which is what the UI should display even if
// its cached belief was stale.
func (h *LibraryHandler) ToggleSaved(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var ref repository.MediaRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.repo.ToggleSaved(userID, ref)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "toggle failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h *LibraryHandler) ListSaved(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.repo.ListSaved(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": list})
}

// RecordHistory handles POST /me/history — called when playback starts.
func (h *LibraryHandler) RecordHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var ref repository.MediaRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.TouchHistory(userID, ref, time.Now().UTC()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

func (h *LibraryHandler) ListHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.repo.ListHistory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": list})
}
