// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// We use a struct to hold configuration and a function to load values from
// the environment. A local .env file, if present, is loaded first so
// development settings don't have to be exported by hand.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// minJWTSecretLength is the shortest HS256 secret accepted in release mode.
const minJWTSecretLength = 32

// defaultOrigins are the local ports the editor frontend runs on.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:3002",
	"http://localhost:3003",
	"http://localhost:3004",
	"http://localhost:3005",
	"http://localhost:3006",
}

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    string
	GinMode string // "debug", "release", or "test"

	// Uploads
	MaxUploadMB int // Largest accepted PDF, in megabytes

	// Extraction history, empty disables it
	DatabaseURL string

	// Auth: both empty means the API is open
	APIKeys   []string
	JWTSecret string

	// Rate limiting
	RateLimitPerHour int // Requests per hour per caller; 0 disables

	// CORS
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
//
// Go Pattern: Functions that can fail return (value, error). The caller
// MUST handle the error.
func Load() (*Config, error) {
	// A missing .env is normal (production sets real env vars). Variables
	// already in the environment win over the file.
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 50),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		APIKeys:   getEnvList("API_KEYS", nil),
		JWTSecret: getEnv("JWT_SECRET", ""),

		RateLimitPerHour: getEnvInt("RATE_LIMIT_PER_HOUR", 100),

		// CORS: in production, set this to your frontend URL(s)
		AllowedOrigins: getEnvList("CORS_ORIGINS", defaultOrigins),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}

	// Security: a short HS256 secret can be brute forced offline.
	if c.GinMode == "release" && c.JWTSecret != "" && len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minJWTSecretLength)
	}
	return nil
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvInt reads an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) int {
	str := getEnv(key, "")
	if str == "" {
		return fallback
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return fallback
	}
	return val
}

// getEnvList reads a comma-separated variable, dropping blank entries.
func getEnvList(key string, fallback []string) []string {
	str := getEnv(key, "")
	if strings.TrimSpace(str) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(str, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
