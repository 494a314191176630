package v1

import (
	"time"

	"portfolio-site/config"
	"portfolio-site/internal/delivery/http/middleware"
	"portfolio-site/internal/delivery/http/prefstore"
	"portfolio-site/internal/delivery/http/web"
	"portfolio-site/internal/domain"
	"portfolio-site/internal/usecase"
	"portfolio-site/internal/view"

	_ "portfolio-site/docs"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContentRepo domain.ContentRepository
	ContactUC   domain.ContactUsecase
	ThemeUC     domain.ThemeUsecase
	HealthUC    usecase.HealthUsecase
	Redis       *goredis.Client // optional; rate limits and theme store fall back without it
	Config      *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config
	secure := cfg.IsProduction()

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, secure)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(secure))
	r.Use(middleware.Visitor(secure))
	r.Use(middleware.CSRFMiddleware(secure))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Redis,
		cfg.RateLimitGlobalThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	stores := prefstore.New(cfg.ThemeStore, deps.Redis, secure)
	submitLimit := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(
		deps.Redis,
		cfg.RateLimitContactThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
		cfg.RateLimitFailClosed,
	))

	// Server-rendered page
	if _, err := web.NewPageHandler(r, web.Deps{
		Content:   deps.ContentRepo,
		ContactUC: deps.ContactUC,
		ThemeUC:   deps.ThemeUC,
		Stores:    stores,
		Ads: view.AdConfig{
			Client: cfg.AdsClient,
			Slots: map[view.AdPosition]string{
				view.AdAfterHero:     cfg.AdsSlotHero,
				view.AdAfterProjects: cfg.AdsSlotProjects,
				view.AdBeforeFooter:  cfg.AdsSlotFooter,
			},
		},
		SiteURL:     cfg.SiteURL,
		SubmitLimit: submitLimit,
	}); err != nil {
		return nil, err
	}

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", healthHandler(deps.HealthUC))

	NewContactHandler(v1, deps.ContactUC, submitLimit)
	NewThemeHandler(v1, deps.ThemeUC, stores)
	NewContentHandler(v1, deps.ContentRepo)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}
