package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/remixgames/backend/internal/ai"
	"github.com/remixgames/backend/internal/bgg"
	"github.com/remixgames/backend/internal/config"
	"github.com/remixgames/backend/internal/db"
	httpHandlers "github.com/remixgames/backend/internal/http/handlers"
	httpRouter "github.com/remixgames/backend/internal/http/router"
	"github.com/remixgames/backend/internal/logger"
	"github.com/remixgames/backend/internal/repository"
	"github.com/remixgames/backend/internal/service"
	"github.com/remixgames/backend/internal/storage"
	"github.com/remixgames/backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout)
	bggClient := bgg.NewClient(cfg.BGGBaseURL, 15*time.Second)

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	remixRepo := repository.NewRemixRepository(dbConn)
	commentRepo := repository.NewCommentRepository(dbConn)
	voteRepo := repository.NewVoteRepository(dbConn)
	favoriteRepo := repository.NewFavoriteRepository(dbConn)
	gameRepo := repository.NewGameRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	moderationRepo := repository.NewModerationRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	go hub.Run()

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	notificationService := service.NewNotificationService(notificationRepo, hub)
	gameService := service.NewGameService(gameRepo, bggClient)

	mediaBase := "/media"
	// Модерация и контент ссылаются друг на друга: ремиксы отправляются
	// в пайплайн, а вердикты модераторов меняют статус ремиксов.
	contentUpdater := &contentStatusAdapter{remixes: remixRepo, comments: commentRepo}
	moderationService := service.NewModerationService(aiClient, moderationRepo, contentUpdater, notificationService, cfg.Moderation)
	remixService := service.NewRemixService(remixRepo, moderationService, mediaRepo, mediaBase)
	commentService := service.NewCommentService(commentRepo, remixRepo, moderationService)
	voteService := service.NewVoteService(voteRepo, remixRepo, remixRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, remixRepo)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	remixHandler := httpHandlers.NewRemixHandler(remixService, gameService, authService)
	commentHandler := httpHandlers.NewCommentHandler(commentService, authService)
	voteHandler := httpHandlers.NewVoteHandler(voteService)
	favoriteHandler := httpHandlers.NewFavoriteHandler(favoriteService)
	gameHandler := httpHandlers.NewGameHandler(gameService)
	mediaHandler := httpHandlers.NewMediaHandler(mediaRepo, mediaStorage, remixService)
	moderationHandler := httpHandlers.NewModerationHandler(moderationService)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg,
		authHandler, remixHandler, commentHandler, voteHandler, favoriteHandler,
		gameHandler, mediaHandler, moderationHandler, notificationHandler,
		wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
