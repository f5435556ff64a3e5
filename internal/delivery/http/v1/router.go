package v1

import (
	"strings"
	"time"

	"ayurdiet-backend/config"
	"ayurdiet-backend/internal/delivery/http/middleware"
	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/internal/navigation"
	"ayurdiet-backend/internal/session"
	"ayurdiet-backend/pkg/lockout"
	"ayurdiet-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	AssessmentUC  domain.AssessmentUsecase
	OnboardingUC  domain.OnboardingUsecase
	FoodUC        domain.FoodUsecase
	HealthUC      domain.HealthUsecase
	Authenticator *middleware.Authenticator
	RateLimiter   *middleware.RateLimiter
	LoginLockout  *lockout.Tracker
	Registry      *navigation.Registry
	Hub           *session.Hub
	Metrics       *metrics.Recorder
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)
	if cfg.MetricsEnabled {
		v1.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authLimited := v1.Group("")
	authLimited.Use(deps.RateLimiter.Middleware(middleware.AuthRateLimitConfig(cfg.RateLimitLoginThreshold, window)))

	// Auth status is resolved here but not required.
	optional := v1.Group("")
	optional.Use(deps.Authenticator.Resolve())

	protected := optional.Group("")
	protected.Use(middleware.RequireRole(navigation.RequireAny, deps.Metrics))

	patient := protected.Group("/patient")
	patient.Use(middleware.RequireRole(navigation.RequirePatient, deps.Metrics))

	dietitian := protected.Group("/dietitian")
	dietitian.Use(middleware.RequireRole(navigation.RequireDietitian, deps.Metrics))

	NewAuthHandler(authLimited, protected, deps.AuthUC, deps.LoginLockout, strings.HasPrefix(cfg.FrontendURL, "https://"))
	NewNavigationHandler(optional, protected, deps.Registry, deps.Hub, deps.Metrics)
	NewFoodHandler(protected, deps.FoodUC)
	NewAssessmentHandler(patient, deps.AssessmentUC)
	NewOnboardingHandler(dietitian, deps.OnboardingUC)

	return r
}
