// Package config reads the immutable service configuration from environment
// variables. The resulting Config is built once in main and passed explicitly
// into every layer; nothing in this codebase reads the environment after
// startup.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a libpq-compatible connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Config is the full service configuration.
type Config struct {
	Port             string
	Database         Database
	JWTSecret        string
	JWTExpiryMinutes int
}

// Load reads config from well-known environment variables, falling back to
// sensible local-development defaults.
func Load() Config {
	return Config{
		Port: getEnv("PORT", "5000"),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "househunters"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWTSecret:        getEnv("JWT_SECRET", "dev_secret"),
		JWTExpiryMinutes: getEnvInt("JWT_EXPIRY_MINUTES", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
