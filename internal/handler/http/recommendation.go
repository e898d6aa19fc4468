package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/htmw/2025Su-ByteSquad/internal/service"
	"github.com/htmw/2025Su-ByteSquad/pkg/validator"
)

// RecommendationHandler handles supplement recommendation endpoints.
type RecommendationHandler struct {
	service *service.RecommendationService
	logger  *slog.Logger
}

// NewRecommendationHandler creates a new recommendation HTTP handler.
func NewRecommendationHandler(svc *service.RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: svc,
		logger:  logger,
	}
}

// RecommendRequest is the JSON request body for the recommendation engine.
type RecommendRequest struct {
	HeightCm float64 `json:"height_cm" validate:"required,gt=0"`
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Goal     string  `json:"goal" validate:"required"`
}

// Recommend handles POST /api/v1/recommendations
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	recs, err := h.service.Recommend(service.RecommendInput{
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		Goal:     req.Goal,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: recs})
}
