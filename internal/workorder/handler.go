package workorder

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/platform/middleware"
	"parapet/internal/transport/http/shared"
	dErrors "parapet/pkg/domain-errors"
)

// Handler exposes work order endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the work order routes. Mutations sit behind the admin gate
// the router applies; reads are open.
func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/workorders", func(r chi.Router) {
		r.With(requireAdmin).Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.With(requireAdmin).Put("/{id}", h.handleUpdate)
		r.With(requireAdmin).Delete("/{id}", h.handleDelete)
		r.With(requireAdmin).Post("/{id}/transition", h.handleTransition)
	})
	r.Get("/properties/{propertyID}/workorders", h.handleListByProperty)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var order WorkOrder
	if err := shared.Decode(r, &order); err != nil {
		shared.WriteError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), &order)
	if err != nil {
		h.logError(r, "create work order failed", err)
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
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var order WorkOrder
	if err := shared.Decode(r, &order); err != nil {
		shared.WriteError(w, err)
		return
	}
	order.ID = id
	updated, err := h.service.Update(r.Context(), &order)
	if err != nil {
		h.logError(r, "update work order failed", err)
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

type transitionRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req transitionRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	order, err := h.service.Transition(r.Context(), id, req.Status)
	if err != nil {
		h.logError(r, "transition work order failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) handleListByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID, err := parseID(r, "propertyID")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	orders, err := h.service.ListByProperty(r.Context(), propertyID)
	if err != nil {
		h.logError(r, "list work orders failed", err)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, orders)
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
