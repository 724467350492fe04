package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/tracknest/trackd/internal/shared"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), 15*time.Minute, 24*time.Hour)

	token, err := issuer.IssueAccessToken(42, "alice")
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if userID != 42 || claims.Username != "alice" {
		t.Fatalf("claims mismatch: got user=%d username=%q", userID, claims.Username)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer([]byte("secret"), 15*time.Minute, time.Hour).
		WithClock(func() time.Time { return clock })

	token, err := issuer.IssueAccessToken(1, "bob")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Still valid just before expiry.
	clock = clock.Add(14 * time.Minute)
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("verify before expiry: %v", err)
	}

	clock = clock.Add(2 * time.Minute)
	if _, err := issuer.Verify(token); !errors.Is(err, shared.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	t.Parallel()

	token, err := NewTokenIssuer([]byte("right-key"), time.Hour, 2*time.Hour).IssueAccessToken(1, "u")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewTokenIssuer([]byte("wrong-key"), time.Hour, 2*time.Hour)
	if _, err := other.Verify(token); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("k"), time.Hour, 2*time.Hour)
	if _, err := issuer.Verify("not.a.jwt"); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	t.Parallel()

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer([]byte("secret"), time.Minute, time.Hour).
		WithClock(func() time.Time { return clock })

	access, err := issuer.IssueAccessToken(1, "u")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := issuer.IssueRefreshToken(1, "u")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	clock = clock.Add(30 * time.Minute)
	if _, err := issuer.Verify(access); !errors.Is(err, shared.ErrTokenExpired) {
		t.Fatalf("expected expired access token, got %v", err)
	}
	if _, err := issuer.Verify(refresh); err != nil {
		t.Fatalf("refresh token should still verify: %v", err)
	}
}
