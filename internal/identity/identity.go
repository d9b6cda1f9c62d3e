// Package identity generates row identifiers for the store.
//
// Exercises get deterministic name-derived ids so that re-seeding the
// bundled exercise list or re-importing an export never duplicates a row.
// Everything else gets a random id.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// exerciseNamespace scopes name-based exercise ids. Changing it would orphan
// every exercise row ever written, so it is frozen.
var exerciseNamespace = uuid.MustParse("9a606d28-2f30-4db3-a94f-4918ebf22f7e")

// ExerciseID derives the canonical id for an exercise name. It is a pure
// function of the normalized name: a SHA-1 name-based UUID (version 5) over
// the trimmed, lowercased form. "Bench Press" and "bench press  " resolve to
// the same id.
func ExerciseID(name string) uuid.UUID {
	return uuid.NewSHA1(exerciseNamespace, []byte(NormalizeName(name)))
}

// NormalizeName is the exact normalization applied before hashing. Callers
// that need to compare names for canonical equality must use the same form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewID returns a random id for ordinary rows (workouts, templates, sets).
func NewID() uuid.UUID {
	return uuid.New()
}
