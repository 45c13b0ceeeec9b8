// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port               int
	LogLevel           string
	DevMode            bool
	InterpreterURL     string        // Base URL of the natural-language interpretation service
	InterpreterTimeout time.Duration // Bound on a single interpretation request
	UniverseSize       int           // Number of records in the generated demo dataset
	UniverseSeed       int64         // Seed for deterministic demo data
	RefreshSchedule    string        // Cron schedule for demo dataset regeneration ("" disables)
	PageSize           int           // Default page size for the derived view
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvAsInt("SCREENER_PORT", 8001),
		LogLevel:           getEnv("SCREENER_LOG_LEVEL", "info"),
		DevMode:            getEnvAsBool("SCREENER_DEV_MODE", false),
		InterpreterURL:     getEnv("SCREENER_INTERPRETER_URL", "http://localhost:9000"),
		InterpreterTimeout: time.Duration(getEnvAsInt("SCREENER_INTERPRETER_TIMEOUT_SECONDS", 10)) * time.Second,
		UniverseSize:       getEnvAsInt("SCREENER_UNIVERSE_SIZE", 100),
		UniverseSeed:       int64(getEnvAsInt("SCREENER_UNIVERSE_SEED", 42)),
		RefreshSchedule:    getEnv("SCREENER_REFRESH_SCHEDULE", "@every 5m"),
		PageSize:           getEnvAsInt("SCREENER_PAGE_SIZE", 20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present and sane
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.UniverseSize <= 0 {
		return fmt.Errorf("universe size must be positive, got %d", c.UniverseSize)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.InterpreterTimeout <= 0 {
		return fmt.Errorf("interpreter timeout must be positive, got %s", c.InterpreterTimeout)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
