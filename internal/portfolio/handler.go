package portfolio

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/platform/middleware"
	"parapet/internal/transport/http/shared"
	dErrors "parapet/pkg/domain-errors"
)

// Handler exposes portfolio endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/portfolios", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(requireAdmin).Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.With(requireAdmin).Put("/{id}", h.handleUpdate)
		r.With(requireAdmin).Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.service.List(r.Context())
	if err != nil {
		h.logError(r, "list portfolios failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, portfolios)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p Portfolio
	if err := shared.Decode(r, &p); err != nil {
		shared.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), &p)
	if err != nil {
		h.logError(r, "create portfolio failed", err)
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
	p, err := h.service.Get(r.Context(), id)
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
	var p Portfolio
	if err := shared.Decode(r, &p); err != nil {
		shared.WriteError(w, err)
		return
	}
	p.ID = id
	updated, err := h.service.Update(r.Context(), &p)
	if err != nil {
		h.logError(r, "update portfolio failed", err)
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
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
