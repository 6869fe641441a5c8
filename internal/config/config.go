// Package config resolves runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultBaseURL matches the backend's local development address.
const DefaultBaseURL = "http://localhost:3000"

// Config holds everything the CLI needs to reach its collaborators.
type Config struct {
	// BaseURL is the backend REST API root.
	BaseURL string
	// UserID is the resolved user identity, when provided via environment
	// instead of a stored login session.
	UserID string
	// Token is a bearer token, when provided via environment.
	Token string
	// DBPath overrides the dev server's SQLite path.
	DBPath string
}

// Load reads PIRING_* variables, merging in a .env file from the working
// directory when one exists. Real environment variables win over .env.
func Load() Config {
	// Ignore the error: a missing .env simply means env-only config.
	_ = godotenv.Load()

	cfg := Config{
		BaseURL: strings.TrimSpace(os.Getenv("PIRING_API_URL")),
		UserID:  strings.TrimSpace(os.Getenv("PIRING_USER_ID")),
		Token:   strings.TrimSpace(os.Getenv("PIRING_TOKEN")),
		DBPath:  strings.TrimSpace(os.Getenv("PIRING_DB")),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}
