package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/remixgames/backend/internal/config"
	"github.com/remixgames/backend/internal/http/handlers"
	"github.com/remixgames/backend/internal/http/middleware"
	"github.com/remixgames/backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	remixHandler *handlers.RemixHandler,
	commentHandler *handlers.CommentHandler,
	voteHandler *handlers.VoteHandler,
	favoriteHandler *handlers.FavoriteHandler,
	gameHandler *handlers.GameHandler,
	mediaHandler *handlers.MediaHandler,
	moderationHandler *handlers.ModerationHandler,
	notificationHandler *handlers.NotificationHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	// Аутентификация: публичные ручки под жёстким rate limit.
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Публичные маршруты: лента, карточки, комментарии, каталог игр.
	api.GET("/ws", wsHandler.Handle)
	api.GET("/remixes", remixHandler.List)
	api.GET("/remixes/:id", middleware.UUIDValidator("id"), middleware.OptionalAuthMiddleware(tokenManager), remixHandler.Get)
	api.GET("/remixes/:id/comments", middleware.UUIDValidator("id"), commentHandler.List)
	api.GET("/games/search", gameHandler.Search)
	api.GET("/games/:id", middleware.UUIDValidator("id"), gameHandler.Get)

	// Защищённые маршруты.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/auth/me", authHandler.Me)

		// Отправка контента идёт через AI модерацию, поэтому под rate limit.
		submitRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
		protected.POST("/remixes", submitRateLimit, remixHandler.Submit)
		protected.PUT("/remixes/:id", middleware.UUIDValidator("id"), submitRateLimit, remixHandler.Update)
		protected.POST("/remixes/:id/comments", middleware.UUIDValidator("id"), submitRateLimit, commentHandler.Submit)

		protected.GET("/remixes/mine", remixHandler.ListMine)
		protected.DELETE("/remixes/:id", middleware.UUIDValidator("id"), remixHandler.Delete)
		protected.DELETE("/comments/:id", middleware.UUIDValidator("id"), commentHandler.Delete)

		protected.PUT("/remixes/:id/vote", middleware.UUIDValidator("id"), voteHandler.Cast)
		protected.DELETE("/remixes/:id/vote", middleware.UUIDValidator("id"), voteHandler.Retract)

		protected.PUT("/remixes/:id/favorite", middleware.UUIDValidator("id"), favoriteHandler.Add)
		protected.DELETE("/remixes/:id/favorite", middleware.UUIDValidator("id"), favoriteHandler.Remove)
		protected.GET("/favorites", favoriteHandler.List)

		protected.POST("/games/import", gameHandler.Import)

		protected.POST("/media", submitRateLimit, mediaHandler.Upload)
		protected.POST("/media/:id/attach/:remixId", middleware.UUIDValidator("id"), middleware.UUIDValidator("remixId"), mediaHandler.AttachToRemix)
		protected.DELETE("/media/:id", middleware.UUIDValidator("id"), mediaHandler.Delete)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.POST("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	}

	// Панель модератора.
	moderation := api.Group("/moderation")
	moderation.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireModerator())
	{
		moderation.GET("/queue", moderationHandler.ListQueue)
		moderation.GET("/queue/counts", moderationHandler.Counts)
		moderation.GET("/queue/:id", middleware.UUIDValidator("id"), moderationHandler.GetItem)
		moderation.POST("/queue/:id/decision", middleware.UUIDValidator("id"), moderationHandler.Decide)
		moderation.GET("/users/:id/flags", middleware.UUIDValidator("id"), moderationHandler.UserFlags)
	}

	return r
}
