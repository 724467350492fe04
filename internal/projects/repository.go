package projects

import (
	"context"
	"time"
)

// RepositoryPort defines data access methods for projects. Every method is
// a single storage round-trip; implementations return shared.ErrNotFound
// for a missing or foreign-owned target.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter) ([]Project, int, error)
	Create(ctx context.Context, p NewProject) (Project, error)
	Update(ctx context.Context, ownerID, id int64, patch Patch) (Project, error)
	Archive(ctx context.Context, ownerID, id int64) (Project, error)
	// ExpireOverdue transitions every active project whose deadline has
	// passed to expired in one bulk statement and reports the row count.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}
