package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string // the console owns stdout, so logs go here

	CatalogPath string  // empty means the built-in catalog
	ShuffleSeed *uint64 // nil means a random seed per process

	RedisURL         string // empty disables the spectator feed
	SpectatorTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; real environment
// variables win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("LOG_FILE", "escape-room.log"),
		CatalogPath: getEnv("CATALOG_PATH", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
	}

	if raw := getEnv("SHUFFLE_SEED", ""); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SHUFFLE_SEED %q: %w", raw, err)
		}
		cfg.ShuffleSeed = &seed
	}

	timeout, err := time.ParseDuration(getEnv("SPECTATOR_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SPECTATOR_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("SPECTATOR_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.SpectatorTimeout = timeout

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
