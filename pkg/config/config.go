package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the ledger core.
type Config struct {
	Port string

	// Database
	DBPath string

	// Auth
	JWTSecret           string
	TokenTTLHours       int
	ResetCodeTTLMinutes int

	// Rate limiting (per client IP)
	RateLimitRPS   float64
	RateLimitBurst int

	// Category seed file; empty disables seeding
	CategoryConfig string

	// Localization
	Language string // "en" or "hi"
}

// Load reads environment variables (optionally via .env) into Config.
func Load() (*Config, error) {
	// Ignore error so the app still starts when .env is missing.
	_ = godotenv.Load()

	// Database path: prefer DB_PATH, then DATABASE_PATH for backward compatibility.
	dbPath := getEnv("DB_PATH", "")
	if dbPath == "" {
		dbPath = getEnv("DATABASE_PATH", "./data/ledger.db")
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DBPath:              dbPath,
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret"),
		TokenTTLHours:       getEnvInt("TOKEN_TTL_HOURS", 72),
		ResetCodeTTLMinutes: getEnvInt("RESET_CODE_TTL_MINUTES", 15),
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 50),
		CategoryConfig:      getEnv("CATEGORY_CONFIG", ""),
		Language:            strings.ToLower(getEnv("LANGUAGE", "en")),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
