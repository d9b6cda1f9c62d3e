package storage

import (
	"context"
	"testing"
	"time"

	"github.com/liftlog/liftlog/internal/models"
)

func importedFixture() []models.ImportedWorkout {
	started := time.Date(2023, 11, 2, 18, 0, 0, 0, time.Local)
	weight := 80.0
	reps := 5
	return []models.ImportedWorkout{
		{
			Name:        "Evening Workout",
			StartedAt:   started,
			CompletedAt: started.Add(45 * time.Minute),
			Exercises: []models.ImportedExercise{
				{
					Name: "Bench Press",
					Sets: []models.ImportedSet{
						{Weight: &weight, Reps: &reps},
						{Weight: &weight, Reps: &reps, IsWarmUp: true},
					},
				},
				{
					Name: "bench press", // same canonical exercise
					Sets: []models.ImportedSet{{Weight: &weight, Reps: &reps}},
				},
			},
		},
		{
			Name:        "Morning Workout",
			StartedAt:   started.AddDate(0, 0, 1),
			CompletedAt: started.AddDate(0, 0, 1).Add(30 * time.Minute),
			Exercises: []models.ImportedExercise{
				{Name: "Squat", Sets: []models.ImportedSet{{Weight: &weight, Reps: &reps}}},
			},
		},
	}
}

func TestImportWorkouts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	counts, err := db.ImportWorkouts(ctx, importedFixture())
	if err != nil {
		t.Fatal(err)
	}
	if counts.Skipped {
		t.Fatal("first import skipped")
	}
	if counts.Workouts != 2 || counts.WorkoutExercises != 3 || counts.Sets != 4 {
		t.Errorf("counts = %+v, want 2 workouts, 3 workout exercises, 4 sets", counts)
	}
	if counts.ExercisesSeen != 2 {
		t.Errorf("exercises seen = %d, want 2 (name casing collapses)", counts.ExercisesSeen)
	}

	workouts, err := db.ListWorkouts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 2 {
		t.Fatalf("workout rows = %d, want 2", len(workouts))
	}
	for _, w := range workouts {
		if w.Status != models.WorkoutCompleted {
			t.Errorf("imported workout %q status = %q, want completed", w.Name, w.Status)
		}
		if w.CompletedAt == nil {
			t.Errorf("imported workout %q has no completion time", w.Name)
		}
	}

	// A second run is a wholesale no-op.
	counts, err = db.ImportWorkouts(ctx, importedFixture())
	if err != nil {
		t.Fatal(err)
	}
	if !counts.Skipped {
		t.Error("second import not skipped")
	}
	if counts.Workouts != 0 || counts.Sets != 0 {
		t.Errorf("skipped import reported writes: %+v", counts)
	}
	workouts, err = db.ListWorkouts(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 2 {
		t.Errorf("workout rows after rerun = %d, want 2", len(workouts))
	}
}

func TestImportLeavesPendingAlone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pendingID, _, err := db.StartOrResumePendingWorkout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.ImportWorkouts(ctx, importedFixture()); err != nil {
		t.Fatal(err)
	}

	pending, err := db.PendingWorkout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if pending == nil || pending.ID != pendingID {
		t.Error("pending workout disturbed by import")
	}
}

func TestFlags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, ok, err := db.Flag(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("missing flag reported present")
	}

	if err := db.SetFlag(ctx, "k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetFlag(ctx, "k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := db.Flag(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "v2" {
		t.Errorf("flag = %q, %v, want v2, true", v, ok)
	}
}
