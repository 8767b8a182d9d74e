package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/platform/middleware"
	"parapet/internal/property/models"
	"parapet/internal/transport/http/shared"
	dErrors "parapet/pkg/domain-errors"
)

type Service interface {
	Create(ctx context.Context, p *models.Property) (*models.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Update(ctx context.Context, p *models.Property) (*models.Property, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, portfolioID *uuid.UUID) ([]*models.Property, error)
}

// Handler exposes property CRUD endpoints.
type Handler struct {
	logger     *slog.Logger
	properties Service
}

func New(properties Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, properties: properties}
}

func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/properties", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(requireAdmin).Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.With(requireAdmin).Put("/{id}", h.handleUpdate)
		r.With(requireAdmin).Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p models.Property
	if err := shared.Decode(r, &p); err != nil {
		shared.WriteError(w, err)
		return
	}
	created, err := h.properties.Create(r.Context(), &p)
	if err != nil {
		h.logError(r, "create property failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	p, err := h.properties.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var p models.Property
	if err := shared.Decode(r, &p); err != nil {
		shared.WriteError(w, err)
		return
	}
	p.ID = id
	updated, err := h.properties.Update(r.Context(), &p)
	if err != nil {
		h.logError(r, "update property failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.properties.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var portfolioID *uuid.UUID
	if v := r.URL.Query().Get("portfolio_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid portfolio_id"))
			return
		}
		portfolioID = &id
	}
	properties, err := h.properties.List(r.Context(), portfolioID)
	if err != nil {
		h.logError(r, "list properties failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"properties": properties})
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid id")
	}
	return id, nil
}
