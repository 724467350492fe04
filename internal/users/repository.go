package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tracknest/trackd/internal/shared"
)

// Repository provides PostgreSQL backed persistence for accounts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new user. The username unique index is the only
// uniqueness enforcement; its violation surfaces as shared.ErrUsernameTaken.
func (r *Repository) Create(ctx context.Context, username, passwordHash string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, username, password_hash, created_at, updated_at`,
		username, passwordHash,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, shared.ErrUsernameTaken
		}
		return User{}, err
	}
	return user, nil
}

// FindByUsername fetches a user by exact username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at, updated_at
		 FROM users
		 WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

var _ RepositoryPort = (*Repository)(nil)
