package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/htmw/2025Su-ByteSquad/internal/service"
	"github.com/htmw/2025Su-ByteSquad/pkg/validator"
)

// WorkoutHandler handles workout plan generation endpoints.
type WorkoutHandler struct {
	service *service.WorkoutService
	logger  *slog.Logger
}

// NewWorkoutHandler creates a new workout HTTP handler.
func NewWorkoutHandler(svc *service.WorkoutService, logger *slog.Logger) *WorkoutHandler {
	return &WorkoutHandler{
		service: svc,
		logger:  logger,
	}
}

// GenerateWorkoutRequest is the JSON request body for generating a workout plan.
type GenerateWorkoutRequest struct {
	Goal            string   `json:"goal" validate:"required"`
	ExperienceLevel string   `json:"experience_level" validate:"required"`
	DurationWeeks   int      `json:"duration_weeks" validate:"required"`
	Equipment       []string `json:"equipment" validate:"required,min=1"`
	FocusAreas      []string `json:"focus_areas" validate:"required,min=1"`
	DaysPerWeek     int      `json:"days_per_week" validate:"required"`
	Age             int      `json:"age,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	HeightCm        float64  `json:"height_cm,omitempty"`
	WeightKg        float64  `json:"weight_kg,omitempty"`
}

// Generate handles POST /api/v1/workouts/generate
func (h *WorkoutHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	plan, err := h.service.GenerateRoutine(r.Context(), service.WorkoutPreferences{
		Goal:            req.Goal,
		ExperienceLevel: req.ExperienceLevel,
		DurationWeeks:   req.DurationWeeks,
		Equipment:       req.Equipment,
		FocusAreas:      req.FocusAreas,
		DaysPerWeek:     req.DaysPerWeek,
		Age:             req.Age,
		Gender:          req.Gender,
		HeightCm:        req.HeightCm,
		WeightKg:        req.WeightKg,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: plan})
}
