package auth

import (
	"context"
	"errors"

	"github.com/tracknest/trackd/internal/shared"
	"github.com/tracknest/trackd/internal/users"
)

// UserStore is the slice of the users service the auth flows depend on.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (users.User, error)
	FindByUsername(ctx context.Context, username string) (users.User, error)
}

// Service wraps authentication business rules.
type Service struct {
	store  UserStore
	hasher *Hasher
	tokens *TokenIssuer
}

// NewService constructs a new Service.
func NewService(store UserStore, hasher *Hasher, tokens *TokenIssuer) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// SignUp hashes the password and stores a new account. A uniqueness
// violation surfaces as shared.ErrUsernameTaken; no tokens are issued.
func (s *Service) SignUp(ctx context.Context, username, password string) error {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if _, err := s.store.Create(ctx, username, digest); err != nil {
		return err
	}
	return nil
}

// SignIn validates username/password credentials and mints the token pair.
// A missing account and a wrong password yield the same error so the
// surface does not leak which usernames exist.
func (s *Service) SignIn(ctx context.Context, username, password string) (TokenPair, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, shared.ErrNotFound) {
		return TokenPair{}, shared.ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return TokenPair{}, shared.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(user.ID, user.Username)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID, user.Username)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
