package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htmw/2025Su-ByteSquad/internal/service"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// stubCompleter returns a canned chat-completion reply.
type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

const workoutPlanJSON = `{"workoutPlan":{"name":"Starter Strength","description":"Full body","duration":"4 weeks","days":[{"day":1,"exercises":[{"name":"Squat","sets":3,"reps":"5"}]}],"tips":["Warm up first"]}}`

func setupWorkoutRouter(completer *stubCompleter) *chi.Mux {
	svc := service.NewWorkoutService(completer, testLogger())
	handler := NewWorkoutHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Post("/api/v1/workouts/generate", handler.Generate)
	return r
}

func workoutRequestBody() []byte {
	body, _ := json.Marshal(GenerateWorkoutRequest{
		Goal:            "strength",
		ExperienceLevel: "beginner",
		DurationWeeks:   4,
		Equipment:       []string{"barbell"},
		FocusAreas:      []string{"full body"},
		DaysPerWeek:     3,
	})
	return body
}

func TestGenerateWorkout_HTTP_Success(t *testing.T) {
	router := setupWorkoutRouter(&stubCompleter{reply: workoutPlanJSON})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts/generate", bytes.NewReader(workoutRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Data)
	plan := resp.Data.(map[string]any)
	assert.Equal(t, "Starter Strength", plan["name"])
}

func TestGenerateWorkout_HTTP_FencedReply(t *testing.T) {
	router := setupWorkoutRouter(&stubCompleter{reply: "```json\n" + workoutPlanJSON + "\n```"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts/generate", bytes.NewReader(workoutRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateWorkout_HTTP_MalformedReply(t *testing.T) {
	router := setupWorkoutRouter(&stubCompleter{reply: "here is a plan, no json though"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts/generate", bytes.NewReader(workoutRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_GATEWAY", resp.Error.Code)
}

func TestGenerateWorkout_HTTP_UpstreamFailure(t *testing.T) {
	router := setupWorkoutRouter(&stubCompleter{err: apperrors.ServiceUnavailable("llm unreachable")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts/generate", bytes.NewReader(workoutRequestBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGenerateWorkout_HTTP_MissingFields(t *testing.T) {
	router := setupWorkoutRouter(&stubCompleter{reply: workoutPlanJSON})

	body, _ := json.Marshal(GenerateWorkoutRequest{Goal: "strength"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workouts/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}
