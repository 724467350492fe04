package jobs

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
)

func TestJobsHealthWithoutInspector(t *testing.T) {
	handler := NewHandler(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Route("/jobs", handler.MountRoutes)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"queue":"default"`) {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
}

func TestJobsHealthUnknownQueueIsUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	t.Cleanup(func() { _ = inspector.Close() })

	handler := NewHandler(inspector, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Route("/jobs", handler.MountRoutes)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for unregistered queue, got %d", res.Code)
	}
}

func TestManualSweepEnqueuesTask(t *testing.T) {
	mr := miniredis.RunT(t)
	redisOpts := asynq.RedisClientOpt{Addr: mr.Addr()}

	client, err := NewClient(redisOpts)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	inspector := asynq.NewInspector(redisOpts)
	t.Cleanup(func() { _ = inspector.Close() })

	handler := NewHandler(inspector, client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Route("/jobs", handler.MountRoutes)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/jobs/sweep", nil))

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Body.String(), `"task":"`) {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}

	pending, err := inspector.ListPendingTasks(QueueDefault)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(pending))
	}
	if pending[0].Type != TaskProjectExpireSweep {
		t.Fatalf("unexpected task type %q", pending[0].Type)
	}
}

func TestManualSweepWithoutQueueIsUnavailable(t *testing.T) {
	handler := NewHandler(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Route("/jobs", handler.MountRoutes)

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/jobs/sweep", nil))

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a queue client, got %d", res.Code)
	}
}
