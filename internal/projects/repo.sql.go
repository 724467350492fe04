package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tracknest/trackd/internal/platform/db"
	"github.com/tracknest/trackd/internal/shared"
)

// Repository provides PostgreSQL backed persistence for projects.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const projectColumns = `id, owner_id, name, url, status, expired_at, created_at, updated_at`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.URL, &p.Status, &p.ExpiredAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// likeEscaper neutralizes LIKE metacharacters so a search term matches as
// a plain substring, the same way the search behaves everywhere else.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// List returns one page of the owner's non-archived projects together with
// the total count matching the filter. Page and count run in one
// transaction so total is consistent with the returned rows.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Project, int, error) {
	const where = `owner_id = $1 AND status <> 'archived'
		AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR url ILIKE '%' || $2 || '%')`
	search := escapeLike(filter.Search)

	list := make([]Project, 0, filter.Limit)
	var total int
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT `+projectColumns+` FROM projects WHERE `+where+` ORDER BY id LIMIT $3 OFFSET $4`,
			filter.OwnerID, search, filter.Limit, filter.Offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p Project
			if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.URL, &p.Status, &p.ExpiredAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return err
			}
			list = append(list, p)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		return tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM projects WHERE `+where,
			filter.OwnerID, search).Scan(&total)
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Create inserts a project with status active.
func (r *Repository) Create(ctx context.Context, p NewProject) (Project, error) {
	return scanProject(r.pool.QueryRow(ctx,
		`INSERT INTO projects (owner_id, name, url, status, expired_at)
		 VALUES ($1, $2, $3, 'active', $4)
		 RETURNING `+projectColumns,
		p.OwnerID, p.Name, p.URL, p.ExpiredAt))
}

// Update applies a partial update to an owned project. Nil patch fields
// keep the stored value.
func (r *Repository) Update(ctx context.Context, ownerID, id int64, patch Patch) (Project, error) {
	project, err := scanProject(r.pool.QueryRow(ctx,
		`UPDATE projects
		 SET name = COALESCE($3, name),
		     url = COALESCE($4, url),
		     expired_at = COALESCE($5, expired_at),
		     updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+projectColumns,
		id, ownerID, patch.Name, patch.URL, patch.ExpiredAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, shared.ErrNotFound
		}
		return Project{}, err
	}
	return project, nil
}

// Archive moves an owned project to the terminal archived status,
// regardless of its current state.
func (r *Repository) Archive(ctx context.Context, ownerID, id int64) (Project, error) {
	project, err := scanProject(r.pool.QueryRow(ctx,
		`UPDATE projects
		 SET status = 'archived', updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+projectColumns,
		id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, shared.ErrNotFound
		}
		return Project{}, err
	}
	return project, nil
}

// ExpireOverdue flips overdue active projects to expired in one statement.
// Filtering on status = 'active' keeps archived rows untouched and makes
// repeat runs no-ops.
func (r *Repository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects
		 SET status = 'expired', updated_at = now()
		 WHERE status = 'active' AND expired_at IS NOT NULL AND expired_at < $1`,
		now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ RepositoryPort = (*Repository)(nil)
