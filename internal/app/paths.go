package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "piring"
	dbFileName     = "piring.db"
	sessionDirName = "auth"
	sessionFile    = "session.json"
)

// DefaultDBPath is where the dev server keeps its SQLite database.
func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// SessionPath is where `piring login` stores the bearer session.
func SessionPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, sessionDirName, sessionFile), nil
}

// EnsureDBDir creates the parent directory of a database path.
func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
