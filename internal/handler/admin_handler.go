package handler

import (
	"net/http"
	"strconv"
	"time"

	"cinebox/config"
	"cinebox/internal/auth"
	"cinebox/internal/domain"
	"cinebox/internal/repository"
	"cinebox/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	cfg        *config.Config
	adminRepo  *repository.AdminRepository
	ledgers    *repository.LedgerRepository
	notifSvc   *service.NotificationService
	moderation *service.ModerationService
}

func NewAdminHandler(
	cfg *config.Config,
	adminRepo *repository.AdminRepository,
	ledgers *repository.LedgerRepository,
	notifSvc *service.NotificationService,
	moderation *service.ModerationService,
) *AdminHandler {
	return &AdminHandler{
		cfg:        cfg,
		adminRepo:  adminRepo,
		ledgers:    ledgers,
		notifSvc:   notifSvc,
		moderation: moderation,
	}
}

// Login handles POST /admin/login against the seeded console account.
func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.ledgers.GetAdminByHandle(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	access, err := auth.GenerateAccessToken(&h.cfg.JWT, u.ID, u.PlatformID, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

// Dashboard handles GET /admin/dashboard — overview counters.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats(time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers handles GET /admin/users — the moderation view's listing.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	search := c.Query("search")
	page, limit := parsePagination(c)
	users, total, err := h.adminRepo.ListUsers(search, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

// SetBan handles PUT /admin/users/:id/ban. The request carries the
// absolute flag, never a relative toggle, so two racing admins converge
// and retries are harmless.
func (h *AdminHandler) SetBan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Banned *bool `json:"banned" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.moderation.SetBanned(uint(id), *req.Banned); err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SendNotification handles POST /admin/notifications. A target user id
// makes it a personal send; without one it goes to the broadcast feed.
func (h *AdminHandler) SendNotification(c *gin.Context) {
	var req struct {
		UserID       *uint                `json:"user_id"`
		Title        string               `json:"title" binding:"required"`
		Message      string               `json:"message" binding:"required"`
		Kind         string               `json:"kind" binding:"omitempty,oneof=SYSTEM REMINDER ADMIN"`
		Media        *repository.MediaRef `json:"media"`
		ScheduledFor *time.Time           `json:"scheduled_for"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == nil {
		if err := h.notifSvc.SendBroadcast(req.Title, req.Message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "broadcast failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "ok", "target": "broadcast"})
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = domain.NotifKindAdmin
	}
	if err := h.notifSvc.SendPersonal(*req.UserID, kind, req.Title, req.Message, req.Media, req.ScheduledFor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "target": "personal"})
}

// DeleteNotification handles DELETE /admin/users/:id/notifications/:notif_id.
func (h *AdminHandler) DeleteNotification(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	notifID, err := strconv.ParseUint(c.Param("notif_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.notifSvc.DeletePersonal(uint(userID), uint(notifID)); err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteBroadcast handles DELETE /admin/broadcasts/:id.
func (h *AdminHandler) DeleteBroadcast(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.notifSvc.DeleteBroadcast(uint(id)); err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "broadcast not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AdjustBalance handles POST /admin/users/:id/credit — the one
// sanctioned non-reward balance mutation.
func (h *AdminHandler) AdjustBalance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ledgers.AdjustBalance(uint(id), req.Amount); err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "adjust failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
