package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Upstream  UpstreamConfig
	Session   SessionConfig
}

// IsProduction reports whether the dashboard runs in production mode.
// Production sessions ride HTTPS-only cookies.
func (c *Config) IsProduction() bool {
	return c.NodeEnv == "production"
}

// UpstreamConfig holds the remote workflow API configuration
type UpstreamConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	RedisAddr  string
	CookieName string
	TTLHours   int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	upstreamURL := os.Getenv("UPSTREAM_URL")
	if upstreamURL == "" {
		return nil, fmt.Errorf("UPSTREAM_URL is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3000"),
		JWTSecret: jwtSecret,
		Upstream: UpstreamConfig{
			BaseURL:        upstreamURL,
			TimeoutSeconds: getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
			CookieName: getEnv("SESSION_COOKIE", "procboard_session"),
			TTLHours:   getEnvInt("SESSION_TTL_HOURS", 24*90),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
