package piring

import (
	"fmt"
	"strings"
	"time"

	"github.com/piringsehat/piring-cli/internal/api"
	"github.com/piringsehat/piring-cli/internal/config"
	"github.com/piringsehat/piring-cli/internal/identity"
)

// resolveIdentity prefers explicit environment credentials over the stored
// login session, so scripts can override an interactive login.
func resolveIdentity(cfg config.Config) (identity.Provider, error) {
	if cfg.UserID != "" || cfg.Token != "" {
		return identity.Static{User: cfg.UserID, BearerToken: cfg.Token}, nil
	}
	session, err := identity.LoadSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return identity.Static{}, nil
	}
	return session, nil
}

func newClient() (*api.Client, identity.Provider, error) {
	cfg := config.Load()
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}
	id, err := resolveIdentity(cfg)
	if err != nil {
		return nil, nil, err
	}
	return &api.Client{BaseURL: cfg.BaseURL, Identity: id}, id, nil
}

func requireUser(id identity.Provider) error {
	if id.UserID() == "" {
		return fmt.Errorf("no user is signed in (run `piring login` or set PIRING_USER_ID)")
	}
	return nil
}

func parseDateOrNow(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}
