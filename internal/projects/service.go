package projects

import (
	"context"
	"time"

	"golang.org/x/text/cases"

	"github.com/tracknest/trackd/internal/shared"
)

// ListResult is one page of projects plus pagination metadata.
type ListResult struct {
	Data []Project
	Page shared.Page
}

// Service handles project lifecycle business logic. All operations are
// scoped to the calling owner; a target that exists but belongs to another
// user is indistinguishable from a missing one.
type Service struct {
	repo   RepositoryPort
	folder cases.Caser
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, folder: cases.Fold()}
}

// List returns the owner's non-archived projects. Search terms are
// case-folded before matching so lookups behave the same regardless of
// input casing.
func (s *Service) List(ctx context.Context, ownerID int64, limit, offset int, search string) (ListResult, error) {
	limit, offset = shared.ClampPage(limit, offset)
	filter := ListFilter{
		OwnerID: ownerID,
		Search:  s.folder.String(search),
		Limit:   limit,
		Offset:  offset,
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{
		Data: list,
		Page: shared.Page{Total: total, Size: len(list), Offset: offset, Limit: limit},
	}, nil
}

// Create inserts a new active project for the owner. Duplicate names and
// URLs are allowed.
func (s *Service) Create(ctx context.Context, p NewProject) (Project, error) {
	return s.repo.Create(ctx, p)
}

// Update applies a partial update to one of the owner's projects.
func (s *Service) Update(ctx context.Context, ownerID, id int64, patch Patch) (Project, error) {
	return s.repo.Update(ctx, ownerID, id, patch)
}

// SoftDelete archives one of the owner's projects. Archival is the only
// deletion surface; the row is never physically removed.
func (s *Service) SoftDelete(ctx context.Context, ownerID, id int64) (Project, error) {
	return s.repo.Archive(ctx, ownerID, id)
}

// ExpireOverdue runs one sweep pass, expiring every active project whose
// deadline passed before now.
func (s *Service) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.ExpireOverdue(ctx, now)
}
