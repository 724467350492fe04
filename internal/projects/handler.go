package projects

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tracknest/trackd/internal/platform/httpx"
	"github.com/tracknest/trackd/internal/shared"
)

// Handler wires HTTP endpoints for the project lifecycle. Every route
// assumes the auth guard already ran and placed a verified identity in the
// request context.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers project routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Patch("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

// parsePageParam reads an optional numeric query parameter. Absent means
// use the default; present but non-numeric is a client error.
func parsePageParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

type createProjectRequest struct {
	Name      string     `json:"name" validate:"required,max=255"`
	URL       string     `json:"url" validate:"required,max=2048"`
	ExpiredAt *time.Time `json:"expiredAt"`
}

type updateProjectRequest struct {
	Name      *string    `json:"name" validate:"omitempty,max=255"`
	URL       *string    `json:"url" validate:"omitempty,max=2048"`
	ExpiredAt *time.Time `json:"expiredAt"`
}

type listResponse struct {
	Data   []Project `json:"data"`
	Total  int       `json:"total"`
	Size   int       `json:"size"`
	Offset int       `json:"offset"`
	Limit  int       `json:"limit"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	query := r.URL.Query()
	limit, err := parsePageParam(query.Get("limit"))
	if err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	offset, err := parsePageParam(query.Get("offset"))
	if err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	result, err := h.service.List(r.Context(), identity.UserID, limit, offset, query.Get("search"))
	if err != nil {
		h.logger.Error("list projects", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{
		Data:   result.Data,
		Total:  result.Page.Total,
		Size:   result.Page.Size,
		Offset: result.Page.Offset,
		Limit:  result.Page.Limit,
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}

	var req createProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	project, err := h.service.Create(r.Context(), NewProject{
		OwnerID:   identity.UserID,
		Name:      req.Name,
		URL:       req.URL,
		ExpiredAt: req.ExpiredAt,
	})
	if err != nil {
		h.logger.Error("create project", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, project)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}

	var req updateProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.ErrValidation)
		return
	}

	project, err := h.service.Update(r.Context(), identity.UserID, id, Patch{
		Name:      req.Name,
		URL:       req.URL,
		ExpiredAt: req.ExpiredAt,
	})
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("update project", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}

	if _, err := h.service.SoftDelete(r.Context(), identity.UserID, id); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("soft delete project", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
