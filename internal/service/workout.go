package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	"github.com/htmw/2025Su-ByteSquad/internal/provider/llm"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// WorkoutPreferences holds the validated form data driving plan generation.
// Duration is a program length in weeks; the generator produces a full
// multi-week program, not a repeating one-week cycle.
type WorkoutPreferences struct {
	Goal            string   `json:"goal" validate:"required"`
	ExperienceLevel string   `json:"experience_level" validate:"required,oneof=beginner intermediate advanced"`
	DurationWeeks   int      `json:"duration_weeks" validate:"required,oneof=4 8 12"`
	Equipment       []string `json:"equipment" validate:"required,min=1"`
	FocusAreas      []string `json:"focus_areas" validate:"required,min=1"`
	DaysPerWeek     int      `json:"days_per_week" validate:"required,gte=1,lte=7"`
	Age             int      `json:"age,omitempty" validate:"omitempty,gt=0,lt=120"`
	Gender          string   `json:"gender,omitempty"`
	HeightCm        float64  `json:"height_cm,omitempty" validate:"omitempty,gt=0"`
	WeightKg        float64  `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
}

// workoutPlanEnvelope is the JSON shape the model is instructed to return.
type workoutPlanEnvelope struct {
	WorkoutPlan *domain.WorkoutPlan `json:"workoutPlan"`
}

// WorkoutService generates workout plans through the chat-completion provider.
type WorkoutService struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewWorkoutService creates a new workout service.
func NewWorkoutService(completer llm.Completer, logger *slog.Logger) *WorkoutService {
	return &WorkoutService{
		completer: completer,
		logger:    logger,
	}
}

// GenerateRoutine builds a prompt from the preferences, requests a single
// completion, and strictly decodes the reply into a WorkoutPlan. Any decode
// failure is a hard generation failure; no partial plan is ever returned.
func (s *WorkoutService) GenerateRoutine(ctx context.Context, prefs WorkoutPreferences) (*domain.WorkoutPlan, error) {
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}

	prompt := BuildWorkoutPrompt(prefs)

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("request workout completion: %w", err)
	}

	plan, err := parseWorkoutPlan(reply)
	if err != nil {
		s.logger.WarnContext(ctx, "workout plan parse failed",
			slog.String("error", err.Error()),
		)
		return nil, apperrors.BadGateway("workout generation failed")
	}

	s.logger.InfoContext(ctx, "workout plan generated",
		slog.String("goal", prefs.Goal),
		slog.Int("duration_weeks", prefs.DurationWeeks),
		slog.Int("days", len(plan.Days)),
	)

	return plan, nil
}

// validatePreferences enforces the preference invariants before any network call.
func validatePreferences(prefs WorkoutPreferences) error {
	if prefs.Goal == "" {
		return apperrors.InvalidInput("goal is required")
	}
	switch prefs.ExperienceLevel {
	case "beginner", "intermediate", "advanced":
	default:
		return apperrors.InvalidInput("experience level must be beginner, intermediate, or advanced")
	}
	switch prefs.DurationWeeks {
	case 4, 8, 12:
	default:
		return apperrors.InvalidInput("duration must be 4, 8, or 12 weeks")
	}
	if len(prefs.Equipment) == 0 {
		return apperrors.InvalidInput("at least one equipment option is required")
	}
	if len(prefs.FocusAreas) == 0 {
		return apperrors.InvalidInput("at least one focus area is required")
	}
	if prefs.DaysPerWeek < 1 || prefs.DaysPerWeek > 7 {
		return apperrors.InvalidInput("days per week must be between 1 and 7")
	}
	return nil
}

// BuildWorkoutPrompt renders the preferences into the natural-language
// instruction sent as the single user message.
func BuildWorkoutPrompt(prefs WorkoutPreferences) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %d-week workout plan for a %s level trainee whose primary goal is %s. ",
		prefs.DurationWeeks, prefs.ExperienceLevel, prefs.Goal)
	fmt.Fprintf(&b, "They can train %d days per week. ", prefs.DaysPerWeek)
	fmt.Fprintf(&b, "Available equipment: %s. ", strings.Join(prefs.Equipment, ", "))
	fmt.Fprintf(&b, "Focus areas: %s. ", strings.Join(prefs.FocusAreas, ", "))

	if prefs.Age > 0 {
		fmt.Fprintf(&b, "Age: %d. ", prefs.Age)
	}
	if prefs.Gender != "" {
		fmt.Fprintf(&b, "Gender: %s. ", prefs.Gender)
	}
	if prefs.HeightCm > 0 {
		fmt.Fprintf(&b, "Height: %.0f cm. ", prefs.HeightCm)
	}
	if prefs.WeightKg > 0 {
		fmt.Fprintf(&b, "Weight: %.0f kg. ", prefs.WeightKg)
	}

	b.WriteString(`Respond ONLY with valid JSON in exactly this format, with no additional text: ` +
		`{"workoutPlan":{"name":"...","description":"...","duration":"...",` +
		`"days":[{"day":1,"exercises":[{"name":"...","sets":3,"reps":"8-12","notes":"..."}]}],` +
		`"tips":["..."]}}`)

	return b.String()
}

// parseWorkoutPlan strips surrounding code fences and strictly decodes the
// workoutPlan envelope.
func parseWorkoutPlan(reply string) (*domain.WorkoutPlan, error) {
	cleaned := stripCodeFences(reply)

	var envelope workoutPlanEnvelope
	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode workout plan: %w", err)
	}
	if envelope.WorkoutPlan == nil {
		return nil, fmt.Errorf("decode workout plan: missing workoutPlan object")
	}
	if len(envelope.WorkoutPlan.Days) == 0 {
		return nil, fmt.Errorf("decode workout plan: plan has no days")
	}

	return envelope.WorkoutPlan, nil
}

// stripCodeFences removes a leading and trailing markdown fence line if the
// model wrapped its reply in one.
func stripCodeFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line (which may carry a language tag).
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		return strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
	}

	trimmed = strings.TrimSpace(trimmed)
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "```"))
	}

	return trimmed
}
