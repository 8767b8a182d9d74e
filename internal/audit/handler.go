package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"parapet/internal/platform/middleware"
	"parapet/internal/transport/http/shared"
	dErrors "parapet/pkg/domain-errors"
)

const defaultListLimit = 100

// Handler exposes the admin audit trail.
type Handler struct {
	logger *slog.Logger
	store  Store
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, store: store}
}

// Register mounts the audit routes. The whole surface is admin-only.
func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.With(requireAdmin).Get("/admin/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := defaultListLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid limit"))
			return
		}
		limit = n
	}

	events, err := h.store.List(r.Context(), q.Get("entity"), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list audit events failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, events)
}
