package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/htmw/2025Su-ByteSquad/internal/service"
)

// SupplementHandler handles catalog browsing endpoints.
type SupplementHandler struct {
	service *service.SupplementService
	logger  *slog.Logger
}

// NewSupplementHandler creates a new supplement HTTP handler.
func NewSupplementHandler(svc *service.SupplementService, logger *slog.Logger) *SupplementHandler {
	return &SupplementHandler{
		service: svc,
		logger:  logger,
	}
}

// List handles GET /api/v1/supplements?category=
func (h *SupplementHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	supplements, err := h.service.List(r.Context(), category)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: supplements})
}

// Get handles GET /api/v1/supplements/{id}
func (h *SupplementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, "id is required")
		return
	}

	supplement, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: supplement})
}
