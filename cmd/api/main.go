package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ayurdiet-backend/config"
	_ "ayurdiet-backend/docs" // Important for Swagger
	"ayurdiet-backend/internal/delivery/http/middleware"
	v1 "ayurdiet-backend/internal/delivery/http/v1"
	"ayurdiet-backend/internal/navigation"
	"ayurdiet-backend/internal/repository/postgres"
	"ayurdiet-backend/internal/repository/supabase"
	"ayurdiet-backend/internal/session"
	"ayurdiet-backend/internal/usecase"
	"ayurdiet-backend/pkg/auth"
	"ayurdiet-backend/pkg/database"
	"ayurdiet-backend/pkg/lockout"
	"ayurdiet-backend/pkg/logger"
	"ayurdiet-backend/pkg/metrics"
	"ayurdiet-backend/pkg/redis"
	"ayurdiet-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// @title           AyurDiet Backend API
// @version         1.0
// @description     Auth proxy, role-gated navigation and the patient and dietitian flows of AyurDiet.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	if err := logger.Init(cfg.LogMode, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Log.Sync()
	logger.Log.Info("Starting ayurdiet backend", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to memory)
	var redisClient *goredis.Client
	if cfg.UpstashRedisURL != "" {
		redisClient, err = redis.Connect(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 5. Setup Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.New(reg)
	if err != nil {
		logger.Log.Error("Failed to register metrics", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	patientRepo := postgres.NewPatientProfileRepository(dbPool)
	dietitianRepo := postgres.NewDietitianRepository(dbPool)
	gateway := supabase.NewAuthGateway(supabase.Config{
		URL:         cfg.SupabaseUrl,
		AnonKey:     cfg.SupabaseKey,
		RedirectURL: cfg.FrontendURL + navigation.LoginPath,
	}, &http.Client{Timeout: 15 * time.Second})

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	hub := session.NewHub()

	authUC := usecase.NewAuthUsecase(userRepo, gateway, hub, validate, usecase.AuthConfig{
		CacheSize: cfg.IdentityCacheSize,
		CacheTTL:  time.Duration(cfg.IdentityCacheTTLSeconds) * time.Second,
	})
	assessmentUC := usecase.NewAssessmentUsecase(patientRepo, validate, rec)
	onboardingUC := usecase.NewOnboardingUsecase(dietitianRepo, validate)
	foodUC := usecase.NewFoodUsecase(nil)

	checks := map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
		"redis":    nil,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 8. Setup Auth (JWKS for RS256, shared secret for HS256)
	verifier := auth.NewVerifier(auth.NewProvider(auth.SupabaseJWKSURL(cfg.SupabaseUrl)), cfg.SupabaseJWTSecret)
	limiter := middleware.NewRateLimiter(redisClient)

	var lockoutStore lockout.Store = lockout.NewMemoryStore()
	if redisClient != nil {
		lockoutStore = lockout.NewRedisStore(redisClient)
	}
	lockoutCfg := lockout.DefaultConfig()
	lockoutCfg.MaxAttempts = cfg.LoginMaxAttempts
	lockoutCfg.BlockDuration = time.Duration(cfg.LoginBlockMinutes) * time.Minute
	loginLockout := lockout.NewTracker(lockoutCfg, lockoutStore)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		AssessmentUC:  assessmentUC,
		OnboardingUC:  onboardingUC,
		FoodUC:        foodUC,
		HealthUC:      healthUC,
		Authenticator: middleware.NewAuthenticator(verifier, authUC, rec),
		RateLimiter:   limiter,
		LoginLockout:  loginLockout,
		Registry:      navigation.DefaultRegistry(),
		Hub:           hub,
		Metrics:       rec,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		limiter.Sweep(gctx, 5*time.Minute)
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := hub.Prune(); n > 0 {
					logger.Log.Debug("Pruned idle session sources", "count", n)
				}
			}
		}
	})
	g.Go(func() error {
		// Graceful Shutdown
		<-gctx.Done()
		logger.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error("Server stopped with error", "error", err)
	}
	logger.Log.Info("Server exiting")
}
