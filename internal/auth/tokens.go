package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tracknest/trackd/internal/shared"
)

// Claims is the payload embedded in both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenIssuer signs and verifies the stateless access/refresh token pair.
// The signing key is loaded once at startup and never mutated.
type TokenIssuer struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer with independent TTLs for the
// access and refresh tokens.
func NewTokenIssuer(signingKey []byte, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the issuer's clock. Used by tests to exercise expiry.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// IssueAccessToken mints a short-lived access token.
func (t *TokenIssuer) IssueAccessToken(userID int64, username string) (string, error) {
	return t.sign(userID, username, t.accessTTL)
}

// IssueRefreshToken mints a longer-lived refresh token.
func (t *TokenIssuer) IssueRefreshToken(userID int64, username string) (string, error) {
	return t.sign(userID, username, t.refreshTTL)
}

func (t *TokenIssuer) sign(userID int64, username string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Username: username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.signingKey)
}

// Verify parses and validates a token, returning its claims. Expired tokens
// yield shared.ErrTokenExpired, any other failure shared.ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.signingKey, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, shared.ErrTokenExpired
		}
		return nil, shared.ErrInvalidToken
	}
	if !token.Valid {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}

// UserID parses the numeric subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, shared.ErrInvalidToken
	}
	return id, nil
}
