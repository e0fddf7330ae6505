package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akhilyln/pulses-trader/controllers"
	"github.com/akhilyln/pulses-trader/database"
	"github.com/akhilyln/pulses-trader/logger"
	appmiddleware "github.com/akhilyln/pulses-trader/middleware"
	"github.com/akhilyln/pulses-trader/models"
	"github.com/akhilyln/pulses-trader/repository"
	"github.com/akhilyln/pulses-trader/routes"
	"github.com/akhilyln/pulses-trader/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	// Initialize structured logger
	logger.Initialize(os.Getenv("APP_ENV"))
	defer logger.Log.Sync()

	// Load configuration from environment variables
	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. Initialization ---
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "localhost:6379", DB: 0}
	}
	rdb := redis.NewClient(redisOpts)

	if err := database.Connect(); err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := models.Migrate(database.DB); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	// --- 2. Dependency Injection (Wiring the layers together) ---
	catalogRepo := repository.NewGormCatalogRepository(database.DB)
	catalogService := services.NewCatalogService(catalogRepo, zap.L())

	authCfg := controllers.AuthConfig{
		AdminPassword: cfg.AdminPassword,
		JWTSecret:     []byte(cfg.JWTSecret),
		SessionTTL:    cfg.SessionTTL,
	}
	cache := controllers.NewCacheManager(rdb)
	validator := controllers.NewRequestValidator()

	catalogController := controllers.NewCatalogController(catalogService, cache)
	adminController := controllers.NewAdminController(catalogService, cache, authCfg, validator)
	rateController := controllers.NewRateController(catalogService, cache, authCfg, validator)

	// --- 3. HTTP Server & Middleware ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(appmiddleware.RequestLogger(zap.L()))
	r.Use(appmiddleware.SecurityHeaders())
	r.Use(appmiddleware.CORSMiddleware())
	r.Use(appmiddleware.RateLimitMiddleware())

	// Per-request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- 4. Route Registration ---
	routes.RegisterRoutes(r, catalogController, adminController, rateController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// --- 5. Graceful Shutdown ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Pulses Trader starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}

	zap.L().Info("Stopped gracefully")
}
