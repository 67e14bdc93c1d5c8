package client

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestTokenSourceStaticOpaqueToken(t *testing.T) {
	ts := NewTokenSource("opaque-token", func(context.Context) (string, error) {
		t.Fatal("refresh must not be called for opaque tokens")
		return "", nil
	})

	got, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got != "opaque-token" {
		t.Errorf("token = %q", got)
	}
}

func TestTokenSourceRefreshesExpiredJWT(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Minute))
	fresh := signedToken(t, time.Now().Add(time.Hour))

	refreshed := 0
	ts := NewTokenSource(expired, func(context.Context) (string, error) {
		refreshed++
		return fresh, nil
	})

	got, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got != fresh {
		t.Error("expected refreshed token")
	}
	if refreshed != 1 {
		t.Errorf("refresh called %d times, want 1", refreshed)
	}

	// A valid token is reused without another refresh.
	if _, err := ts.Token(context.Background()); err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if refreshed != 1 {
		t.Errorf("refresh called %d times after reuse, want 1", refreshed)
	}
}

func TestTokenSourceValidJWTNotRefreshed(t *testing.T) {
	valid := signedToken(t, time.Now().Add(time.Hour))
	ts := NewTokenSource(valid, func(context.Context) (string, error) {
		t.Fatal("refresh must not be called for a valid token")
		return "", nil
	})

	if _, err := ts.Token(context.Background()); err != nil {
		t.Fatalf("Token failed: %v", err)
	}
}

func TestTokenSourceNoRefreshFunc(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Minute))
	ts := NewTokenSource(expired, nil)

	got, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if got != expired {
		t.Error("static source should return the token as-is")
	}
}
