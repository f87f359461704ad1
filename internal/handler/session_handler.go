package handler

import (
	"net/http"
	"time"

	"cinebox/config"
	"cinebox/internal/auth"
	"cinebox/internal/middleware"
	"cinebox/internal/repository"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	cfg     *config.Config
	ledgers *repository.LedgerRepository
}

func NewSessionHandler(cfg *config.Config, ledgers *repository.LedgerRepository) *SessionHandler {
	return &SessionHandler{cfg: cfg, ledgers: ledgers}
}

// Start handles POST /auth/session. The mini-app shell posts the
// platform identity it was launched with; the ledger is created on first
// sight and only profile-mirror fields are refreshed after that.
func (h *SessionHandler) Start(c *gin.Context) {
	var req struct {
		PlatformID  int64  `json:"platform_id" binding:"required"`
		DisplayName string `json:"display_name"`
		Handle      string `json:"handle"`
		AvatarURL   string `json:"avatar_url"`
		Locale      string `json:"locale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.ledgers.CreateOrRefresh(req.PlatformID, repository.Profile{
		DisplayName: req.DisplayName,
		Handle:      req.Handle,
		AvatarURL:   req.AvatarURL,
		Locale:      req.Locale,
	}, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session start failed"})
		return
	}
	access, err := auth.GenerateAccessToken(&h.cfg.JWT, u.ID, u.PlatformID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	refresh, err := auth.GenerateRefreshToken(&h.cfg.JWT, u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Refresh handles POST /auth/refresh.
func (h *SessionHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := auth.ParseRefreshToken(&h.cfg.JWT, req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	u, err := h.ledgers.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown identity"})
		return
	}
	access, err := auth.GenerateAccessToken(&h.cfg.JWT, u.ID, u.PlatformID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

// GetMe handles GET /me/ledger — the current ledger snapshot.
func (h *SessionHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.ledgers.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ledger not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}
