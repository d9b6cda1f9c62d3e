package models

import "time"

// WorkoutStatus is the lifecycle state of a workout. A workout moves from
// pending to completed exactly once; there is no other transition.
type WorkoutStatus string

const (
	WorkoutPending   WorkoutStatus = "pending"
	WorkoutCompleted WorkoutStatus = "completed"
)

// Exercise is a canonical exercise record. The id is derived from the name
// (identity.ExerciseID), so the same name always maps to the same row.
type Exercise struct {
	ID   string
	Name string
}

// Template is a reusable workout blueprint.
type Template struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateExercise is one planned exercise slot within a template.
type TemplateExercise struct {
	ID              string
	TemplateID      string
	ExerciseID      string
	ExerciseName    string
	SortOrder       int
	PlannedSetCount int
}

// Workout is a single training session. At most one pending workout exists
// at any time, enforced by a partial unique index in the store.
type Workout struct {
	ID               string
	Name             string
	Status           WorkoutStatus
	SourceTemplateID *string
	StartedAt        time.Time
	CompletedAt      *time.Time
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// WorkoutExercise links an exercise into a workout, in performed order.
type WorkoutExercise struct {
	ID           string
	WorkoutID    string
	ExerciseID   string
	ExerciseName string
	SortOrder    int
}

// WorkoutSet is one set of a workout exercise. All measurement fields are
// optional so a set can sit blank while it is being edited.
type WorkoutSet struct {
	ID                string
	WorkoutExerciseID string
	SortOrder         int
	Weight            *float64
	Reps              *int
	Distance          *float64
	Seconds           *int
	Notes             *string
	RPE               *float64
	RIR               *int
	IsWarmUp          bool
	RestTimerSeconds  *int
}

// User is persisted for the authentication collaborator. Hashing and session
// policy live with the collaborator, not here.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
