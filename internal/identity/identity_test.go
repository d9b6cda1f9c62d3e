package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestExerciseIDDeterministic(t *testing.T) {
	a := ExerciseID("Bench Press")
	b := ExerciseID("Bench Press")
	if a != b {
		t.Fatalf("same name produced different ids: %s vs %s", a, b)
	}
}

// TestExerciseIDNormalization pins the normalization boundary: trimming and
// case folding are applied, nothing else.
func TestExerciseIDNormalization(t *testing.T) {
	base := ExerciseID("Bench Press")

	equal := []string{"bench press", "  Bench Press  ", "Bench press\t", "BENCH PRESS"}
	for _, name := range equal {
		if got := ExerciseID(name); got != base {
			t.Errorf("ExerciseID(%q) = %s, want %s", name, got, base)
		}
	}

	distinct := []string{"Bench  Press", "Bench-Press", "Benchpress", "Incline Bench Press"}
	for _, name := range distinct {
		if got := ExerciseID(name); got == base {
			t.Errorf("ExerciseID(%q) collided with %q", name, "Bench Press")
		}
	}
}

func TestExerciseIDIsValidV5(t *testing.T) {
	id := ExerciseID("Squat")
	if id.Version() != 5 {
		t.Errorf("version = %d, want 5", id.Version())
	}
	if id.Variant() != uuid.RFC4122 {
		t.Errorf("variant = %v, want RFC4122", id.Variant())
	}
	// Round-trips through the string form used as a primary key.
	parsed, err := uuid.Parse(id.String())
	if err != nil {
		t.Fatalf("parsing generated id: %v", err)
	}
	if parsed != id {
		t.Errorf("round-trip mismatch: %s vs %s", parsed, id)
	}
}

func TestNewIDUnique(t *testing.T) {
	if NewID() == NewID() {
		t.Fatal("two random ids collided")
	}
}
