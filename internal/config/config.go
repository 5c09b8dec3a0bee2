// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the API service.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string // optional; empty disables the company detail cache
	JWTSecret   string
	// StatsIntervalMinutes is how often the stats reporter logs table counts.
	StatsIntervalMinutes int
}

// Load reads a .env file if present, then environment variables, and returns
// a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	interval := 60
	if raw := os.Getenv("STATS_INTERVAL_MINUTES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("STATS_INTERVAL_MINUTES must be a positive integer, got %q", raw)
		}
		interval = n
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             os.Getenv("REDIS_URL"),
		JWTSecret:            secret,
		StatsIntervalMinutes: interval,
	}, nil
}
