package domain

import "time"

// Fitness goals form a closed set shared by the recommendation engine and
// the user profile.
const (
	GoalWeightLoss  = "weight loss"
	GoalMuscleGain  = "muscle gain"
	GoalMaintenance = "maintenance"
)

// User represents a registered user with their fitness profile.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	HeightCm     float64   `json:"height_cm,omitempty"`
	WeightKg     float64   `json:"weight_kg,omitempty"`
	FitnessGoal  string    `json:"fitness_goal,omitempty"`
	Age          int       `json:"age,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BMI returns the body mass index derived from the profile, or 0 when height
// is not set.
func (u *User) BMI() float64 {
	return ComputeBMI(u.HeightCm, u.WeightKg)
}

// ComputeBMI calculates body mass index from height in centimeters and weight
// in kilograms. Returns 0 when height is non-positive.
func ComputeBMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM)
}
