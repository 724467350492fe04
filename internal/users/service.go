package users

import (
	"context"
)

// RepositoryPort defines data access methods for accounts.
type RepositoryPort interface {
	Create(ctx context.Context, username, passwordHash string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
}

// Service handles account business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create stores a new account with an already-hashed password.
func (s *Service) Create(ctx context.Context, username, passwordHash string) (User, error) {
	return s.repo.Create(ctx, username, passwordHash)
}

// FindByUsername resolves an account by its username.
func (s *Service) FindByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.FindByUsername(ctx, username)
}
