package service

import (
	"log/slog"

	"github.com/htmw/2025Su-ByteSquad/internal/domain"
	apperrors "github.com/htmw/2025Su-ByteSquad/pkg/errors"
)

// Fixed recommendation lists per fitness goal. Output order is part of the
// contract: identical inputs always yield identical, identically ordered
// results.
var (
	weightLossBase = []domain.Recommendation{
		{ProductName: "Green Tea Extract", ProductLink: "/supplements/green-tea"},
		{ProductName: "CLA", ProductLink: "/supplements/cla"},
		{ProductName: "L-Carnitine", ProductLink: "/supplements/carnitine"},
	}
	weightLossHighBMI = domain.Recommendation{
		ProductName: "Apple Cider Vinegar Capsules", ProductLink: "/supplements/acv",
	}

	muscleGainBase = []domain.Recommendation{
		{ProductName: "Whey Protein", ProductLink: "/supplements/whey"},
		{ProductName: "Creatine", ProductLink: "/supplements/creatine"},
		{ProductName: "BCAA", ProductLink: "/supplements/bcaa"},
	}
	muscleGainLowWeight = domain.Recommendation{
		ProductName: "Mass Gainer", ProductLink: "/supplements/gainer",
	}

	maintenanceBase = []domain.Recommendation{
		{ProductName: "Multivitamin", ProductLink: "/supplements/vitamins"},
		{ProductName: "Fish Oil", ProductLink: "/supplements/fishoil"},
		{ProductName: "Probiotics", ProductLink: "/supplements/probiotics"},
	}
)

// Thresholds for the conditional fourth recommendation.
const (
	highBMIThreshold   = 30.0
	lowWeightThreshold = 60.0
)

// RecommendInput holds the body metrics and goal driving a recommendation.
type RecommendInput struct {
	HeightCm float64 `json:"height_cm" validate:"required,gt=0"`
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Goal     string  `json:"goal" validate:"required,oneof='weight loss' 'muscle gain' maintenance"`
}

// RecommendationService maps body metrics and a fitness goal to a fixed,
// deterministic supplement list.
type RecommendationService struct {
	logger *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(logger *slog.Logger) *RecommendationService {
	return &RecommendationService{logger: logger}
}

// Recommend returns the supplement list for the given metrics and goal.
// BMI = weight / (height/100)^2. An unknown or empty goal is a validation
// error, never a valid empty recommendation.
func (s *RecommendationService) Recommend(input RecommendInput) ([]domain.Recommendation, error) {
	if input.HeightCm <= 0 {
		return nil, apperrors.InvalidInput("height must be positive")
	}
	if input.WeightKg <= 0 {
		return nil, apperrors.InvalidInput("weight must be positive")
	}

	bmi := domain.ComputeBMI(input.HeightCm, input.WeightKg)

	switch input.Goal {
	case domain.GoalWeightLoss:
		recs := cloneRecs(weightLossBase)
		if bmi > highBMIThreshold {
			recs = append(recs, weightLossHighBMI)
		}
		return recs, nil

	case domain.GoalMuscleGain:
		recs := cloneRecs(muscleGainBase)
		if input.WeightKg < lowWeightThreshold {
			recs = append(recs, muscleGainLowWeight)
		}
		return recs, nil

	case domain.GoalMaintenance:
		return cloneRecs(maintenanceBase), nil

	default:
		return nil, apperrors.InvalidInput("goal must be one of: weight loss, muscle gain, maintenance")
	}
}

// cloneRecs copies a base list so appends never mutate the shared slices.
func cloneRecs(base []domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, len(base))
	copy(out, base)
	return out
}
