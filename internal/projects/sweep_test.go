package projects

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	jobmetrics "github.com/tracknest/trackd/internal/jobs"
)

func newTestSweeper(repo *memoryRepo, now time.Time) *Sweeper {
	service := NewService(repo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSweeper(service, logger, jobmetrics.NewMetrics(nil), time.Minute).
		WithClock(func() time.Time { return now })
}

func TestSweepExpiresOverdueActiveProjects(t *testing.T) {
	repo := newMemoryRepo()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	overdue, err := repo.Create(ctx, NewProject{OwnerID: 1, Name: "old", URL: "old.dev", ExpiredAt: timePtr(now.Add(-time.Hour))})
	require.NoError(t, err)
	fresh, err := repo.Create(ctx, NewProject{OwnerID: 1, Name: "new", URL: "new.dev", ExpiredAt: timePtr(now.Add(time.Hour))})
	require.NoError(t, err)
	noDeadline, err := repo.Create(ctx, NewProject{OwnerID: 1, Name: "open", URL: "open.dev"})
	require.NoError(t, err)

	sweeper := newTestSweeper(repo, now)
	require.NoError(t, sweeper.SweepOnce(ctx))

	require.Equal(t, StatusExpired, repo.projects[overdue.ID].Status)
	require.Equal(t, StatusActive, repo.projects[fresh.ID].Status)
	require.Equal(t, StatusActive, repo.projects[noDeadline.ID].Status)
}

func TestSweepIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, NewProject{OwnerID: 1, Name: "old", URL: "old.dev", ExpiredAt: timePtr(now.Add(-time.Hour))})
	require.NoError(t, err)

	service := NewService(repo)
	first, err := service.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, first)

	second, err := service.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	require.Zero(t, second)
}

func TestSweepNeverTouchesArchivedProjects(t *testing.T) {
	repo := newMemoryRepo()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Soft-deleted before the deadline passed; the sweep must leave it be.
	project, err := repo.Create(ctx, NewProject{OwnerID: 1, Name: "p", URL: "u", ExpiredAt: timePtr(now.Add(-time.Hour))})
	require.NoError(t, err)
	_, err = repo.Archive(ctx, 1, project.ID)
	require.NoError(t, err)

	sweeper := newTestSweeper(repo, now)
	require.NoError(t, sweeper.SweepOnce(ctx))

	require.Equal(t, StatusArchived, repo.projects[project.ID].Status)
}

func TestProjectLifecycleScenario(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo)
	ctx := context.Background()

	deadline := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	project, err := service.Create(ctx, NewProject{OwnerID: 1, Name: "site", URL: "example.com", ExpiredAt: &deadline})
	require.NoError(t, err)

	_, err = service.ExpireOverdue(ctx, deadline.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, StatusExpired, repo.projects[project.ID].Status)

	archived, err := service.SoftDelete(ctx, 1, project.ID)
	require.NoError(t, err)
	require.Equal(t, StatusArchived, archived.Status)

	result, err := service.List(ctx, 1, 10, 0, "")
	require.NoError(t, err)
	require.Zero(t, result.Page.Total)
	require.Empty(t, result.Data)
}
