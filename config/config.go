package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all runtime settings, loaded from environment variables.
type Config struct {
	Host           string
	Port           string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	GeminiAPIKey   string
	GeminiModel    string
	AllowedOrigins []string
	RefreshCron    string
}

// Load reads configuration from the environment, applying defaults where a
// variable is unset.
func Load() *Config {
	return &Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-insecure-secret"),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		// Refresh saved goal prices every 12 hours.
		RefreshCron: getEnv("REFRESH_CRON", "0 0 */12 * * *"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
