package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/db"
	"github.com/ignatzorin/portfolio-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
	httpRouter "github.com/ignatzorin/portfolio-backend/internal/http/router"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/mail"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/service"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
	"github.com/ignatzorin/portfolio-backend/internal/ws"
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
	if cfg.IsProduction() {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	uploadStorage, err := storage.NewUploadStorage(cfg.UploadDir, cfg.MaxUploadBytes())
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	fallbackOwner, _ := cfg.DefaultUser()

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	personalInfoRepo := repository.NewPersonalInfoRepository(dbConn)
	skillRepo := repository.NewSkillRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn)
	experienceRepo := repository.NewExperienceRepository(dbConn)
	socialLinkRepo := repository.NewSocialLinkRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)
	siteContentRepo := repository.NewSiteContentRepository(dbConn)
	messageRepo := repository.NewMessageRepository(dbConn)
	fileRepo := repository.NewFileRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	goroutine.SafeGo(hub.Run)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	personalInfoService := service.NewPersonalInfoService(personalInfoRepo)
	skillService := service.NewSkillService(skillRepo)
	projectService := service.NewProjectService(projectRepo)
	experienceService := service.NewExperienceService(experienceRepo)
	socialLinkService := service.NewSocialLinkService(socialLinkRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	siteContentService := service.NewSiteContentService(siteContentRepo)
	portfolioService := service.NewPortfolioService(personalInfoService, skillService, projectService, experienceService, socialLinkService, fallbackOwner)
	uploadService := service.NewUploadService(fileRepo, uploadStorage, cfg.UploadURLPrefix)
	messageService := service.NewMessageService(messageRepo, settingsService, newMailer(cfg), hub, fallbackOwner)

	handlers := httpRouter.Handlers{
		Auth:         httpHandlers.NewAuthHandler(authService, personalInfoService, tokenManager, cfg.CookieSecure),
		PersonalInfo: httpHandlers.NewPersonalInfoHandler(personalInfoService),
		Portfolio:    httpHandlers.NewPortfolioHandler(portfolioService),
		Skills:       httpHandlers.NewCollectionHandler(skillService),
		Projects:     httpHandlers.NewCollectionHandler(projectService),
		Experience:   httpHandlers.NewCollectionHandler(experienceService),
		SocialLinks:  httpHandlers.NewCollectionHandler(socialLinkService),
		Messages:     httpHandlers.NewMessageHandler(messageService),
		Settings:     httpHandlers.NewSettingsHandler(settingsService),
		SiteContent:  httpHandlers.NewSiteContentHandler(siteContentService),
		Upload:       httpHandlers.NewUploadHandler(uploadService, uploadStorage),
		Health:       httpHandlers.NewHealthHandler(dbConn),
		WS:           httpHandlers.NewWSHandler(hub, tokenManager),
	}
	if cfg.AdminStaticDir != "" {
		handlers.Static = httpHandlers.NewStaticHandler(cfg.AdminStaticDir)
	}
	if !cfg.IsProduction() {
		seedService := service.NewSeedService(authService, portfolioService, siteContentService)
		handlers.Seed = httpHandlers.NewSeedHandler(authService, seedService)
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, handlers, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           middleware.NewCORS(cfg.AllowedOrigins).Handler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithField("error", err.Error()).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithFields(map[string]interface{}{
		"port":      cfg.HTTPPort,
		"db_driver": cfg.DBDriver,
		"env":       cfg.Env,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// newMailer возвращает nil, если SMTP не настроен: уведомления и ответы тогда отключены.
func newMailer(cfg *config.Config) service.Mailer {
	mailer, err := mail.New(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		if !errors.Is(err, mail.ErrNotConfigured) {
			logger.Log.WithField("error", err.Error()).Warn("main: почта отключена")
		}
		return nil
	}
	return mailer
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
