package tax

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/platform/middleware"
	"parapet/internal/transport/http/shared"
	dErrors "parapet/pkg/domain-errors"
)

// Handler exposes tax record endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/taxes", func(r chi.Router) {
		r.With(requireAdmin).Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.With(requireAdmin).Put("/{id}", h.handleUpdate)
		r.With(requireAdmin).Delete("/{id}", h.handleDelete)
	})
	r.Get("/properties/{propertyID}/taxes", h.handleRollup)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var rec Record
	if err := shared.Decode(r, &rec); err != nil {
		shared.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), &rec)
	if err != nil {
		h.logError(r, "create tax record failed", err)
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
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var rec Record
	if err := shared.Decode(r, &rec); err != nil {
		shared.WriteError(w, err)
		return
	}
	rec.ID = id
	updated, err := h.service.Update(r.Context(), &rec)
	if err != nil {
		h.logError(r, "update tax record failed", err)
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
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRollup(w http.ResponseWriter, r *http.Request) {
	propertyID, err := parseID(r, "propertyID")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	ro, err := h.service.RollupByProperty(r.Context(), propertyID)
	if err != nil {
		h.logError(r, "tax rollup failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ro)
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
