package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RefreshFunc exchanges the current (expired or expiring) token for a fresh
// one, typically by calling the auth service's refresh endpoint.
type RefreshFunc func(ctx context.Context) (string, error)

// TokenSource supplies the bearer token for outgoing requests. When the token
// is a JWT, its exp claim is inspected (without signature verification; the
// client is not the verifying party) and the refresh function is invoked
// before the token lapses. Opaque tokens are passed through unchanged.
type TokenSource struct {
	mu      sync.Mutex
	token   string
	expiry  time.Time
	refresh RefreshFunc

	// leeway is how long before expiry a refresh is attempted.
	leeway time.Duration
}

// NewTokenSource creates a TokenSource for the given initial token. refresh
// may be nil, in which case the token is static.
func NewTokenSource(token string, refresh RefreshFunc) *TokenSource {
	ts := &TokenSource{
		token:   token,
		refresh: refresh,
		leeway:  30 * time.Second,
	}
	ts.expiry = tokenExpiry(token)
	return ts
}

// Token returns a token valid for an outgoing request, refreshing first when
// the current one is within the expiry leeway.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.refresh == nil || ts.expiry.IsZero() || time.Until(ts.expiry) > ts.leeway {
		return ts.token, nil
	}

	fresh, err := ts.refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	ts.token = fresh
	ts.expiry = tokenExpiry(fresh)
	return ts.token, nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature. Returns the zero time for opaque or claimless tokens.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
