package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds the listen ports for the two delivery surfaces.
type ServerConfig struct {
	RESTPort string
	WSPort   string
}

// UpstreamConfig holds the upstream endpoint configuration. Empty base URLs
// mean the production hosts.
type UpstreamConfig struct {
	LiveBaseURL  string
	StatsBaseURL string
}

// Config holds all application configuration
type Config struct {
	Server       ServerConfig
	Upstream     UpstreamConfig
	PollInterval time.Duration
	LogLevel     string
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	pollSeconds, err := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "10"))
	if err != nil || pollSeconds <= 0 {
		return nil, fmt.Errorf("invalid POLL_INTERVAL_SECONDS value: %q", os.Getenv("POLL_INTERVAL_SECONDS"))
	}

	return &Config{
		Server: ServerConfig{
			RESTPort: getEnv("REST_PORT", "8080"),
			WSPort:   getEnv("WS_PORT", "8081"),
		},
		Upstream: UpstreamConfig{
			LiveBaseURL:  getEnv("NBA_LIVE_BASE_URL", ""),
			StatsBaseURL: getEnv("NBA_STATS_BASE_URL", ""),
		},
		PollInterval: time.Duration(pollSeconds) * time.Second,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
