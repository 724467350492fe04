// Package jobs wires background task processing for trackd.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/tracknest/trackd/internal/jobs"
	"github.com/tracknest/trackd/internal/projects"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskProjectExpireSweep transitions overdue active projects to expired.
	TaskProjectExpireSweep = "project:expire_sweep"
)

// ExpireSweepPayload parameterises a sweep run. An empty payload sweeps
// against the current time.
type ExpireSweepPayload struct {
	Now time.Time `json:"now,omitempty"`
}

// NewExpireSweepTask constructs an Asynq task for the expiration sweep.
func NewExpireSweepTask() (*asynq.Task, error) {
	data, err := json.Marshal(ExpireSweepPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProjectExpireSweep, data), nil
}

// ExpireSweepJob handles TaskProjectExpireSweep tasks.
type ExpireSweepJob struct {
	service *projects.Service
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewExpireSweepJob constructs the sweep job handler.
func NewExpireSweepJob(service *projects.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *ExpireSweepJob {
	return &ExpireSweepJob{service: service, logger: logger, metrics: metrics}
}

// Handle runs one sweep pass. Errors are returned to asynq for its retry
// bookkeeping but nothing escalates to a caller; the next scheduled tick
// sweeps again regardless.
func (j *ExpireSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ExpireSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	now := payload.Now
	if now.IsZero() {
		now = time.Now()
	}

	tracker := j.metrics.Track(projects.SweepJobName)
	expired, err := j.service.ExpireOverdue(ctx, now)
	if err != nil {
		j.logger.Warn("expiration sweep failed", slog.Any("error", err))
		return tracker.End(err)
	}
	if expired > 0 {
		j.metrics.AddExpired(expired)
		j.logger.Info("expiration sweep", slog.Int64("expired", expired))
	}
	return tracker.End(nil)
}
