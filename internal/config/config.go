package config

import (
	"os"
	"time"
)

// Config holds application configuration read from the environment.
type Config struct {
	Port          string
	DBPath        string
	LogLevel      string
	AdminUser     string
	AdminPassword string
	SessionTTL    time.Duration
	SeedDemo      bool
}

// Load reads configuration from environment variables with defaults.
// The store defaults to :memory: — data lives and dies with the process.
func Load() *Config {
	return &Config{
		Port:          getEnv("HEARTHSIDE_PORT", "8080"),
		DBPath:        getEnv("HEARTHSIDE_DB_PATH", ":memory:"),
		LogLevel:      getEnv("HEARTHSIDE_LOG_LEVEL", "info"),
		AdminUser:     getEnv("HEARTHSIDE_ADMIN_USER", "admin"),
		AdminPassword: getEnv("HEARTHSIDE_ADMIN_PASSWORD", "admin123"),
		SessionTTL:    7 * 24 * time.Hour,
		SeedDemo:      getEnv("HEARTHSIDE_SEED_DEMO", "true") == "true",
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
