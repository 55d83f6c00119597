package router

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/http/handlers"
	"github.com/ignatzorin/portfolio-backend/internal/http/middleware"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// loginRateLimit попыток входа с одного IP за период RATE_LIMIT_PERIOD.
const loginRateLimit = 5

// Handlers все HTTP хэндлеры приложения. Seed и Static могут быть nil.
type Handlers struct {
	Auth         *handlers.AuthHandler
	PersonalInfo *handlers.PersonalInfoHandler
	Portfolio    *handlers.PortfolioHandler
	Skills       *handlers.SkillHandler
	Projects     *handlers.ProjectHandler
	Experience   *handlers.ExperienceHandler
	SocialLinks  *handlers.SocialLinkHandler
	Messages     *handlers.MessageHandler
	Settings     *handlers.SettingsHandler
	SiteContent  *handlers.SiteContentHandler
	Upload       *handlers.UploadHandler
	Health       *handlers.HealthHandler
	WS           *handlers.WSHandler
	Seed         *handlers.SeedHandler
	Static       *handlers.StaticHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokenManager *service.TokenManager) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())

	r.GET("/health", h.Health.Health)

	uploadPrefix := "/" + strings.Trim(cfg.UploadURLPrefix, "/")
	r.GET(uploadPrefix+"/*path", h.Upload.Serve)
	r.HEAD(uploadPrefix+"/*path", h.Upload.Serve)

	if h.Static != nil {
		gate := middleware.AdminPageGate(tokenManager, cfg.LoginPath, "/admin/login")
		r.GET("/admin", gate, h.Static.Serve)
		r.GET("/admin/*path", gate, h.Static.Serve)
	}

	api := r.Group("/api")
	requireAuth := middleware.AuthMiddleware(tokenManager)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitMiddleware("login", loginRateLimit, cfg.RateLimitPeriod), h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", requireAuth, h.Auth.Me)
	}

	// Публичные маршруты
	api.GET("/portfolio", middleware.OptionalAuth(tokenManager), h.Portfolio.Get)
	api.GET("/site-content", h.SiteContent.List)
	api.POST("/contact", middleware.RateLimitMiddleware("contact", cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Messages.Contact)
	api.GET("/ws", h.WS.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(requireAuth)
	{
		protected.POST("/portfolio", h.Portfolio.Save)

		protected.GET("/personal-info", h.PersonalInfo.Get)
		protected.PUT("/personal-info", h.PersonalInfo.Put)

		protected.GET("/skills", h.Skills.List)
		protected.POST("/skills", h.Skills.Create)
		protected.PUT("/skills", h.Skills.Put)
		protected.DELETE("/skills", middleware.RequireQueryUUID("id"), h.Skills.Delete)

		protected.GET("/projects", h.Projects.List)
		protected.POST("/projects", h.Projects.Create)
		protected.PUT("/projects", h.Projects.Put)
		protected.DELETE("/projects", middleware.RequireQueryUUID("id"), h.Projects.Delete)

		protected.GET("/experience", h.Experience.List)
		protected.POST("/experience", h.Experience.Create)
		protected.PUT("/experience", h.Experience.Put)
		protected.DELETE("/experience", middleware.RequireQueryUUID("id"), h.Experience.Delete)

		protected.GET("/social-links", h.SocialLinks.List)
		protected.POST("/social-links", h.SocialLinks.Create)
		protected.PUT("/social-links", h.SocialLinks.Put)
		protected.DELETE("/social-links", middleware.RequireQueryUUID("id"), h.SocialLinks.Delete)

		protected.GET("/messages", h.Messages.List)
		protected.POST("/messages", h.Messages.Create)
		protected.PUT("/messages", middleware.RequireQueryUUID("id"), h.Messages.Update)
		protected.DELETE("/messages", middleware.RequireQueryUUID("id"), h.Messages.Delete)
		protected.POST("/messages/reply", h.Messages.Reply)

		protected.GET("/settings", h.Settings.Get)
		protected.PUT("/settings", h.Settings.Update)
		protected.POST("/settings", h.Settings.Reset)

		protected.POST("/site-content", h.SiteContent.Upsert)
		protected.PUT("/site-content", h.SiteContent.UpsertMany)
		protected.DELETE("/site-content", h.SiteContent.Delete)

		protected.POST("/upload", h.Upload.Upload)
		protected.DELETE("/upload", h.Upload.Delete)

		if h.Seed != nil && !cfg.IsProduction() {
			protected.POST("/seed", h.Seed.Seed)
		}
	}

	return r
}
