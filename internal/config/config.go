package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Data
	DataDir         string
	CategoryVintage string

	// Cache. RedisURL is optional; without it only the in-process cache is used.
	RedisURL     string
	CacheTTL     time.Duration
	CacheEntries int
	// WarmWorkers preload default files at startup; 0 disables warming.
	WarmWorkers int

	// Uploads
	UploadMaxBytes int64
	UploadEntries  int

	// Free-form build note shown at the bottom of the dashboard
	BuildInfo string
}

// Load loads configuration from environment variables.
// It returns an error if the configuration is unusable.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		DataDir:         getEnv("DATA_DIR", "data"),
		CategoryVintage: getEnv("CATEGORY_VINTAGE", "all"),

		RedisURL:     getEnv("REDIS_URL", ""),
		CacheTTL:     getEnvDuration("CACHE_TTL", 1*time.Hour),
		CacheEntries: getEnvInt("CACHE_ENTRIES", 64),
		WarmWorkers:  getEnvInt("WARM_WORKERS", 2),

		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),
		UploadEntries:  getEnvInt("UPLOAD_ENTRIES", 32),

		BuildInfo: getEnv("BUILD_INFO", ""),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d", cfg.Port)
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_BYTES: %d", cfg.UploadMaxBytes)
	}
	if cfg.CacheEntries <= 0 {
		cfg.CacheEntries = 1
	}
	if cfg.WarmWorkers < 0 {
		cfg.WarmWorkers = 0
	}
	if cfg.UploadEntries <= 0 {
		cfg.UploadEntries = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
