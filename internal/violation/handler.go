package violation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/platform/middleware"
	"parapet/internal/transport/http/shared"
	dErrors "parapet/pkg/domain-errors"
)

// Handler exposes violation endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the violation routes. Mutations sit behind the admin gate
// the router applies; reads are open.
func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/violations", func(r chi.Router) {
		r.With(requireAdmin).Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.With(requireAdmin).Put("/{id}", h.handleUpdate)
		r.With(requireAdmin).Delete("/{id}", h.handleDelete)
	})
	r.Get("/properties/{propertyID}/violations", h.handleSearch)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var v Violation
	if err := shared.Decode(r, &v); err != nil {
		shared.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), &v)
	if err != nil {
		h.logError(r, "create violation failed", err)
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
	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var v Violation
	if err := shared.Decode(r, &v); err != nil {
		shared.WriteError(w, err)
		return
	}
	v.ID = id
	updated, err := h.service.Update(r.Context(), &v)
	if err != nil {
		h.logError(r, "update violation failed", err)
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

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	propertyID, err := parseID(r, "propertyID")
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	params := r.URL.Query()
	q := Query{
		Agency: params.Get("agency"),
		Class:  params.Get("class"),
		Status: Status(params.Get("status")),
		Text:   params.Get("q"),
	}

	res, err := h.service.SearchByProperty(r.Context(), propertyID, q)
	if err != nil {
		h.logError(r, "search violations failed", err)
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
