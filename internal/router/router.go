package router

import (
	"net/http"

	"gymref/config"
	"gymref/internal/cache"
	"gymref/internal/domain"
	"gymref/internal/handler"
	"gymref/internal/metrics"
	"gymref/internal/middleware"
	"gymref/internal/repository"
	"gymref/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Limiters are the per-client rate limiters; the caller owns their cleanup loop.
type Limiters struct {
	API   *middleware.RateLimiter
	Issue *middleware.RateLimiter
}

func NewLimiters(cfg *config.RateLimitConfig) Limiters {
	return Limiters{
		API:   middleware.NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst, cfg.IdleTimeout),
		Issue: middleware.NewRateLimiter(cfg.IssueRequestsPerSecond, cfg.IssueBurst, cfg.IdleTimeout),
	}
}

func Setup(cfg *config.Config, db *gorm.DB, store cache.Cache, limiters Limiters, log logrus.FieldLogger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		domain.RegisterJSONTagNames(v)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger(log))

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Repositories
	repos := repository.New(db)

	// Services
	authSvc := service.NewAuthService(&cfg.JWT, repos, log)
	campaignSvc := service.NewCampaignService(repos, log)
	referralSvc := service.NewReferralService(repos, store, cfg.Cache.StatusTTL, log)
	rewardSvc := service.NewRewardService(repos, store, log)
	gymSvc := service.NewGymService(repos)
	dashboardSvc := service.NewDashboardService(repos)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, handler.SessionOptions{
		MaxAge: int(cfg.JWT.AccessExpiry.Seconds()),
		Secure: cfg.Server.SecureCookies,
	})
	campaignHandler := handler.NewCampaignHandler(campaignSvc)
	referralHandler := handler.NewReferralHandler(referralSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	gymHandler := handler.NewGymHandler(gymSvc, dashboardSvc)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(limiters.API))
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		// Public scan flow
		api.GET("/gyms/:id/scan", gymHandler.ScanInfo)
		api.POST("/members", middleware.RateLimit(limiters.Issue), referralHandler.IssueCode)
		api.GET("/referrals/:code", referralHandler.Status)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(&cfg.JWT))
		protected.Use(middleware.RequireRole(domain.RoleOwner))
		{
			protected.POST("/auth/logout", authHandler.Logout)
			protected.GET("/me", authHandler.Me)
			protected.POST("/me/password", authHandler.ChangePassword)

			protected.POST("/campaigns", campaignHandler.Create)
			protected.GET("/campaigns", campaignHandler.List)
			protected.GET("/campaigns/:id", campaignHandler.Get)
			protected.PATCH("/campaigns/:id/active", campaignHandler.SetActive)

			protected.GET("/members", gymHandler.ListMembers)
			protected.POST("/referrals/verify", referralHandler.Verify)

			protected.GET("/rewards", rewardHandler.List)
			protected.POST("/rewards/mark", rewardHandler.MarkGiven)

			protected.GET("/dashboard/stats", gymHandler.Stats)
		}
	}

	return r
}
