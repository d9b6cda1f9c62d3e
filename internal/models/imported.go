package models

import "time"

// ImportedWorkout is a fully grouped workout reconstructed from a flat
// export, ready for materialization in a single store transaction. The
// importer builds these; the store writes them.
type ImportedWorkout struct {
	Name        string
	StartedAt   time.Time
	CompletedAt time.Time
	Notes       *string
	Exercises   []ImportedExercise
}

// ImportedExercise groups the sets performed for one exercise name within an
// imported workout, in order of first appearance.
type ImportedExercise struct {
	Name string
	Sets []ImportedSet
}

// ImportedSet mirrors WorkoutSet minus identifiers, which are assigned at
// materialization time.
type ImportedSet struct {
	Weight           *float64
	Reps             *int
	Distance         *float64
	Seconds          *int
	Notes            *string
	RPE              *float64
	RIR              *int
	IsWarmUp         bool
	RestTimerSeconds *int
}
