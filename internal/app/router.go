package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tracknest/trackd/internal/auth"
	"github.com/tracknest/trackd/internal/observability"
	"github.com/tracknest/trackd/internal/projects"
	"github.com/tracknest/trackd/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	TokenIssuer    *auth.TokenIssuer
	AuthHandler    *auth.Handler
	ProjectHandler *projects.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with trackd defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	guard := TokenGuard(params.TokenIssuer)

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(AuthRateLimit())
			params.AuthHandler.MountRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(guard)
			params.AuthHandler.MountProtectedRoutes(r)
		})
	})

	r.Route("/project", func(r chi.Router) {
		r.Use(guard)
		params.ProjectHandler.MountRoutes(r)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
