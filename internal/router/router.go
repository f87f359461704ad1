package router

import (
	"time"

	"cinebox/config"
	"cinebox/internal/handler"
	"cinebox/internal/middleware"
	"cinebox/internal/repository"
	"cinebox/internal/service"
	"cinebox/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	ledgerRepo := repository.NewLedgerRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	feedHub := ws.NewHub()

	// Services
	rewardSvc := service.NewRewardService(ledgerRepo, feedHub, log, cfg.Reward.MaxFlushSeconds)
	presenceSvc := service.NewPresenceService(ledgerRepo, log)
	notifSvc := service.NewNotificationService(notificationRepo, feedHub, log)
	moderationSvc := service.NewModerationService(ledgerRepo, feedHub, log)

	// Handlers
	sessionHandler := handler.NewSessionHandler(cfg, ledgerRepo)
	watchHandler := handler.NewWatchHandler(rewardSvc)
	presenceHandler := handler.NewPresenceHandler(presenceSvc)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	libraryHandler := handler.NewLibraryHandler(libraryRepo)
	adminHandler := handler.NewAdminHandler(cfg, adminRepo, ledgerRepo, notifSvc, moderationSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	gateMw := middleware.NotBanned(ledgerRepo)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/session", sessionHandler.Start)
			authGroup.POST("/refresh", sessionHandler.Refresh)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/ledger", sessionHandler.GetMe)
			me.POST("/heartbeat", presenceHandler.Heartbeat)
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}
		// The moderation gate sits in front of everything that accrues
		// reward or touches content on the identity's behalf.
		gated := api.Group("/me")
		gated.Use(authMw, gateMw)
		{
			gated.POST("/watch", watchHandler.Flush)
			gated.POST("/saved/toggle", libraryHandler.ToggleSaved)
			gated.GET("/saved", libraryHandler.ListSaved)
			gated.POST("/history", libraryHandler.RecordHistory)
			gated.GET("/history", libraryHandler.ListHistory)
		}

		api.GET("/broadcasts", authMw, notificationHandler.ListBroadcasts)
		api.GET("/users/:id/presence", authMw, presenceHandler.Get)

		admin := api.Group("/admin")
		admin.POST("/login", adminHandler.Login)
		adminAuthed := admin.Group("")
		adminAuthed.Use(authMw, middleware.AdminRequired())
		{
			adminAuthed.GET("/dashboard", adminHandler.Dashboard)
			adminAuthed.GET("/users", adminHandler.ListUsers)
			adminAuthed.PUT("/users/:id/ban", adminHandler.SetBan)
			adminAuthed.POST("/users/:id/credit", adminHandler.AdjustBalance)
			adminAuthed.POST("/notifications", adminHandler.SendNotification)
			adminAuthed.DELETE("/users/:id/notifications/:notif_id", adminHandler.DeleteNotification)
			adminAuthed.DELETE("/broadcasts/:id", adminHandler.DeleteBroadcast)
		}
	}

	r.GET("/ws/feed", ws.UpgradeFeedWS(&cfg.JWT, feedHub, func(userID uint) (interface{}, error) {
		u, err := ledgerRepo.GetByID(userID)
		if err != nil {
			return nil, err
		}
		inbox, err := notifSvc.ListInbox(userID)
		if err != nil {
			return nil, err
		}
		broadcasts, err := notifSvc.ListBroadcasts()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"type":          "snapshot",
			"ledger":        u,
			"notifications": inbox,
			"broadcasts":    broadcasts,
			"is_banned":     u.IsBanned,
		}, nil
	}))

	return r
}
