package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/permit/models"
	"parapet/internal/permit/service"
	"parapet/internal/platform/middleware"
	"parapet/internal/transport/http/shared"
	dErrors "parapet/pkg/domain-errors"
	pstrings "parapet/pkg/platform/strings"
)

// Service defines the permit operations the HTTP layer needs.
type Service interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Classified(ctx context.Context, propertyID uuid.UUID, filters service.Filters) (*service.DisplayResult, error)
}

// Handler exposes permit application endpoints.
type Handler struct {
	logger  *slog.Logger
	permits Service
}

func New(permits Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, permits: permits}
}

// Register mounts the permit routes. Mutations sit behind the admin gate the
// router applies; reads are open.
func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/applications", func(r chi.Router) {
		r.With(requireAdmin).Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.With(requireAdmin).Put("/{id}", h.handleUpdate)
		r.With(requireAdmin).Delete("/{id}", h.handleDelete)
	})
	r.Get("/properties/{propertyID}/applications", h.handleClassified)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var app models.Application
	if err := shared.Decode(r, &app); err != nil {
		shared.WriteError(w, err)
		return
	}
	created, err := h.permits.Create(r.Context(), &app)
	if err != nil {
		h.logError(r, "create application failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	app, err := h.permits.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var app models.Application
	if err := shared.Decode(r, &app); err != nil {
		shared.WriteError(w, err)
		return
	}
	app.ID = id
	updated, err := h.permits.Update(r.Context(), &app)
	if err != nil {
		h.logError(r, "update application failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.permits.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClassified serves the reconciled filing view. Filter state lives in
// the query string; nothing is remembered between requests.
func (h *Handler) handleClassified(w http.ResponseWriter, r *http.Request) {
	propertyID, err := parseID(r, "propertyID")
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	q := r.URL.Query()
	filters := service.Filters{
		Search:        q.Get("q"),
		Agencies:      splitParam(q.Get("agency")),
		Statuses:      splitParam(q.Get("status")),
		ShowCompleted: q.Get("show_completed") == "true",
	}

	res, err := h.permits.Classified(r.Context(), propertyID, filters)
	if err != nil {
		h.logError(r, "classify applications failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
}

func parseID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+param)
	}
	return id, nil
}

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	return pstrings.DedupeAndTrim(strings.Split(v, ","))
}
