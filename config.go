package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds all environment variables for the service.
type Config struct {
	Port          string        // Service port (default: 8080)
	Env           string        // "production" or "development"
	AdminPassword string        // Shared secret gating the admin surface
	JWTSecret     string        // Secret for issued session tokens
	SessionTTL    time.Duration // Session token lifetime
	RedisURL      string        // Redis connection URL
}

// LoadConfig loads environment variables into a Config struct and applies
// defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          os.Getenv("PORT"),
		Env:           os.Getenv("APP_ENV"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisURL:      os.Getenv("REDIS_URL"),
		SessionTTL:    2 * time.Hour,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		zap.L().Warn("ADMIN_PASSWORD not set, using default credential")
	}
	if cfg.JWTSecret == "" {
		// Ephemeral per-boot secret: password-in-body flows still work,
		// session tokens simply do not survive restarts.
		cfg.JWTSecret = uuid.NewString()
		zap.L().Warn("JWT_SECRET not set, session tokens will not survive restarts")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}

	return cfg, nil
}
