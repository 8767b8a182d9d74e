package summary

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"parapet/internal/platform/middleware"
	"parapet/internal/transport/http/shared"
	dErrors "parapet/pkg/domain-errors"
)

// Handler exposes the summary endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Register(r chi.Router, _ func(http.Handler) http.Handler) {
	r.Get("/properties/{propertyID}/summary", h.handleGenerate)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid propertyID"))
		return
	}
	res, err := h.service.Generate(r.Context(), propertyID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "generate summary failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}
