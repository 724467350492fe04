package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tracknest/trackd/internal/auth"
	"github.com/tracknest/trackd/internal/shared"
)

func newGuardedEcho(issuer *auth.TokenIssuer) http.Handler {
	return TokenGuard(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := shared.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "no identity", http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Username", identity.Username)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestTokenGuardAcceptsValidBearer(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("secret"), time.Hour, 2*time.Hour)
	handler := newGuardedEcho(issuer)

	token, err := issuer.IssueAccessToken(7, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got := res.Header().Get("X-Username"); got != "alice" {
		t.Fatalf("expected identity username alice, got %q", got)
	}
}

func TestTokenGuardRejectsMissingAndMalformedHeaders(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("secret"), time.Hour, 2*time.Hour)
	handler := newGuardedEcho(issuer)

	for _, header := range []string{"", "Bearer ", "Basic abc", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		if res.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, res.Code)
		}
	}
}

func TestTokenGuardRejectsExpiredToken(t *testing.T) {
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := auth.NewTokenIssuer([]byte("secret"), time.Minute, time.Hour).
		WithClock(func() time.Time { return clock })
	handler := newGuardedEcho(issuer)

	token, err := issuer.IssueAccessToken(7, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock = clock.Add(5 * time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", res.Code)
	}
}

func TestTokenGuardRejectsRefreshForgedWithOtherKey(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("secret"), time.Hour, 2*time.Hour)
	forger := auth.NewTokenIssuer([]byte("other"), time.Hour, 2*time.Hour)
	handler := newGuardedEcho(issuer)

	token, err := forger.IssueAccessToken(7, "mallory")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", res.Code)
	}
}
