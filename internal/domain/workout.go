package domain

// WorkoutPlan is a generated multi-week training program.
type WorkoutPlan struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Duration    string       `json:"duration"`
	Days        []WorkoutDay `json:"days"`
	Tips        []string     `json:"tips"`
}

// WorkoutDay is a single training day within a plan.
type WorkoutDay struct {
	Day       int        `json:"day"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is one movement prescription within a training day.
type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Notes string `json:"notes,omitempty"`
}
