package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port            string
	LogLevel        string
	SeedFile        string
	CORSOrigins     []string
	ShutdownTimeout time.Duration

	// Redis is optional: an empty address disables moderation notifications.
	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	// MinIO is optional: an empty endpoint disables cover uploads.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	CoverMaxBytes  int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		SeedFile:       getenv("SEED_FILE", ""),
		CORSOrigins:    splitList(getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		RedisChannel:   getenv("REDIS_CHANNEL", "moderation.events"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "blog-covers"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(getenv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.CoverMaxBytes, err = strconv.ParseInt(getenv("COVER_MAX_BYTES", "5242880"), 10, 64); err != nil {
		return nil, fmt.Errorf("COVER_MAX_BYTES: %w", err)
	}
	if cfg.CoverMaxBytes <= 0 {
		return nil, fmt.Errorf("COVER_MAX_BYTES must be positive, got %d", cfg.CoverMaxBytes)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
