package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/tracknest/trackd/internal/jobs"
	"github.com/tracknest/trackd/internal/projects"
)

type sweepRepoStub struct {
	expired int64
	calls   int
	err     error
}

func (s *sweepRepoStub) List(context.Context, projects.ListFilter) ([]projects.Project, int, error) {
	return nil, 0, nil
}

func (s *sweepRepoStub) Create(context.Context, projects.NewProject) (projects.Project, error) {
	return projects.Project{}, nil
}

func (s *sweepRepoStub) Update(context.Context, int64, int64, projects.Patch) (projects.Project, error) {
	return projects.Project{}, nil
}

func (s *sweepRepoStub) Archive(context.Context, int64, int64) (projects.Project, error) {
	return projects.Project{}, nil
}

func (s *sweepRepoStub) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	s.calls++
	return s.expired, s.err
}

func newSweepJob(repo *sweepRepoStub) *ExpireSweepJob {
	service := projects.NewService(repo)
	return NewExpireSweepJob(service, slog.New(slog.NewTextHandler(io.Discard, nil)), jobmetrics.NewMetrics(nil))
}

func TestExpireSweepTaskHandle(t *testing.T) {
	repo := &sweepRepoStub{expired: 3}
	job := newSweepJob(repo)

	task, err := NewExpireSweepTask()
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 1, repo.calls)
}

func TestExpireSweepTaskHandlePropagatesFailure(t *testing.T) {
	repo := &sweepRepoStub{err: errors.New("storage down")}
	job := newSweepJob(repo)

	task, err := NewExpireSweepTask()
	require.NoError(t, err)

	require.Error(t, job.Handle(context.Background(), task))
}

func TestExpireSweepTaskHandleSkipsMalformedPayload(t *testing.T) {
	repo := &sweepRepoStub{}
	job := newSweepJob(repo)

	task := asynq.NewTask(TaskProjectExpireSweep, []byte("{broken"))
	err := job.Handle(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Zero(t, repo.calls)
}
