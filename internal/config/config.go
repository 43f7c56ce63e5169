package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// HTTPTimeout bounds each outbound Open-Meteo call.
	HTTPTimeout time.Duration

	// DefaultTimezone is used when a request does not name a timezone.
	DefaultTimezone string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.HTTPTimeout = timeout

	cfg.DefaultTimezone = getenvDefault("DEFAULT_TIMEZONE", "Europe/Paris")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
