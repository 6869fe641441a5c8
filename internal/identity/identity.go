// Package identity abstracts the identity-provider collaborator: something
// that can produce the current bearer token for the signed-in user. Data
// components receive a Provider explicitly instead of reading ambient state.
package identity

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Provider yields the active user's id and a fresh bearer token per call.
// An empty token means "no user resolved"; callers skip the Authorization
// header and treat user-scoped operations as unavailable.
type Provider interface {
	UserID() string
	Token(ctx context.Context) (string, error)
}

// Static is a fixed token/user pair, typically sourced from configuration.
type Static struct {
	User        string
	BearerToken string
}

func (s Static) UserID() string { return s.User }

func (s Static) Token(ctx context.Context) (string, error) {
	return s.BearerToken, nil
}

// FromTokenSource adapts an oauth2.TokenSource (which handles refresh and
// expiry internally) into a Provider for the given user id.
func FromTokenSource(userID string, ts oauth2.TokenSource) Provider {
	return &tokenSourceProvider{user: userID, ts: oauth2.ReuseTokenSource(nil, ts)}
}

type tokenSourceProvider struct {
	user string
	ts   oauth2.TokenSource
}

func (p *tokenSourceProvider) UserID() string { return p.user }

func (p *tokenSourceProvider) Token(ctx context.Context) (string, error) {
	tok, err := p.ts.Token()
	if err != nil {
		return "", fmt.Errorf("fetch identity token: %w", err)
	}
	return tok.AccessToken, nil
}
