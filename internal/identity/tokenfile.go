package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/piringsehat/piring-cli/internal/app"
)

// storedSession is the on-disk session written by `piring login`.
// Token field names match golang.org/x/oauth2.Token so the file stays
// readable by standard tooling.
type storedSession struct {
	UserID string       `json:"user_id"`
	Token  oauth2.Token `json:"token"`
}

// LoadSession reads the persisted session, if any. A missing file returns
// (nil, nil): not being logged in is not an error.
func LoadSession() (Provider, error) {
	path, err := app.SessionPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var s storedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("corrupt session file (delete %s to log in again): %w", path, err)
	}
	return FromTokenSource(s.UserID, oauth2.StaticTokenSource(&s.Token)), nil
}

// SaveSession persists a bearer token and user id for later runs.
// The write is atomic (tmp file + rename) and owner-only.
func SaveSession(userID, bearerToken string) error {
	path, err := app.SessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	data, err := json.MarshalIndent(storedSession{
		UserID: userID,
		Token:  oauth2.Token{AccessToken: bearerToken, TokenType: "Bearer"},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// ClearSession removes the persisted session. Missing file is fine.
func ClearSession() error {
	path, err := app.SessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
