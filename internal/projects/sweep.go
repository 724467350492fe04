package projects

import (
	"context"
	"log/slog"
	"time"

	jobmetrics "github.com/tracknest/trackd/internal/jobs"
)

// SweepJobName labels sweep runs in job metrics.
const SweepJobName = "project_expire_sweep"

// Sweeper runs the expiration sweep on a fixed interval. A failed pass is
// logged and retried on the next tick; no caller is waiting on it.
type Sweeper struct {
	service  *Service
	logger   *slog.Logger
	metrics  *jobmetrics.Metrics
	interval time.Duration
	now      func() time.Time
}

// NewSweeper constructs a Sweeper. A non-positive interval falls back to
// one minute.
func NewSweeper(service *Service, logger *slog.Logger, metrics *jobmetrics.Metrics, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		service:  service,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock overrides the sweeper's clock for tests.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Run sweeps on every tick until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.logger.Warn("expiration sweep failed", slog.Any("error", err))
			}
		}
	}
}

// SweepOnce performs a single sweep pass.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	tracker := s.metrics.Track(SweepJobName)
	expired, err := s.service.ExpireOverdue(ctx, s.now())
	if err != nil {
		return tracker.End(err)
	}
	if expired > 0 {
		s.metrics.AddExpired(expired)
		s.logger.Info("expiration sweep", slog.Int64("expired", expired))
	}
	return tracker.End(nil)
}
