package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestStartOrResumePendingWorkout(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, resumed, err := db.StartOrResumePendingWorkout(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if resumed {
		t.Error("first start reported resumed")
	}

	id2, resumed, err := db.StartOrResumePendingWorkout(ctx)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if !resumed || id2 != id {
		t.Errorf("second start = (%s, resumed=%v), want (%s, resumed=true)", id2, resumed, id)
	}
}

// TestPendingUniquenessConcurrent hammers the start operation from many
// goroutines: exactly one pending workout may exist afterwards and every
// caller must observe the same id.
func TestPendingUniquenessConcurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	const callers = 16
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, _, err := db.StartOrResumePendingWorkout(ctx)
			if err != nil {
				t.Errorf("caller %d: %v", i, err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("caller %d saw id %s, caller 0 saw %s", i, ids[i], ids[0])
		}
	}

	var count int
	if err := db.sql.QueryRow(`SELECT COUNT(*) FROM workouts WHERE status = 'pending'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("pending workouts = %d, want 1", count)
	}
}

func TestWorkoutNameBuckets(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Morning Workout"},
		{11, "Morning Workout"},
		{12, "Afternoon Workout"},
		{17, "Afternoon Workout"},
		{18, "Evening Workout"},
		{23, "Evening Workout"},
	}
	for _, tt := range tests {
		got := workoutName(time.Date(2024, 3, 14, tt.hour, 0, 0, 0, time.Local))
		if got != tt.want {
			t.Errorf("workoutName(hour=%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

// TestStartFromTemplate covers the template-to-workout copy contract:
// exercises in template order, plannedSetCount blank sets each, negative
// counts clamped to zero.
func TestStartFromTemplate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	benchID := mustInsertExercise(t, db, "Bench Press")
	squatID := mustInsertExercise(t, db, "Squat")

	tpl, err := db.CreateTemplate(ctx, "Push Day")
	if err != nil {
		t.Fatalf("creating template: %v", err)
	}
	if _, err := db.AddTemplateExercise(ctx, tpl.ID, benchID, 3); err != nil {
		t.Fatalf("adding bench: %v", err)
	}
	if _, err := db.AddTemplateExercise(ctx, tpl.ID, squatID, -2); err != nil {
		t.Fatalf("adding squat: %v", err)
	}

	workoutID, resumed, err := db.StartPendingWorkoutFromTemplate(ctx, tpl.ID)
	if err != nil {
		t.Fatalf("starting from template: %v", err)
	}
	if resumed {
		t.Error("fresh start reported resumed")
	}

	w, err := db.GetWorkout(ctx, workoutID)
	if err != nil {
		t.Fatalf("getting workout: %v", err)
	}
	if w.Name != "Push Day" {
		t.Errorf("workout name = %q, want template name", w.Name)
	}
	if w.SourceTemplateID == nil || *w.SourceTemplateID != tpl.ID {
		t.Errorf("source template = %v, want %s", w.SourceTemplateID, tpl.ID)
	}

	wes, err := db.WorkoutExercises(ctx, workoutID)
	if err != nil {
		t.Fatalf("listing workout exercises: %v", err)
	}
	if len(wes) != 2 || wes[0].ExerciseID != benchID || wes[1].ExerciseID != squatID {
		t.Fatalf("workout exercises = %+v, want bench then squat", wes)
	}

	benchSets, err := db.Sets(ctx, wes[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(benchSets) != 3 {
		t.Fatalf("bench sets = %d, want 3", len(benchSets))
	}
	for i, s := range benchSets {
		if s.SortOrder != i {
			t.Errorf("bench set %d sort order = %d", i, s.SortOrder)
		}
		if s.Weight != nil || s.Reps != nil {
			t.Errorf("bench set %d is not blank: %+v", i, s)
		}
	}

	squatSets, err := db.Sets(ctx, wes[1].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(squatSets) != 0 {
		t.Errorf("squat sets = %d, want 0 (negative planned count clamps)", len(squatSets))
	}

	// Starting again while pending resumes instead of copying twice.
	again, resumed, err := db.StartPendingWorkoutFromTemplate(ctx, tpl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !resumed || again != workoutID {
		t.Errorf("restart = (%s, %v), want resume of %s", again, resumed, workoutID)
	}
}

func TestCompleteWorkoutIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, _, err := db.StartOrResumePendingWorkout(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if err := db.CompleteWorkout(ctx, id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	w, err := db.GetWorkout(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if w.Status != "completed" || w.CompletedAt == nil {
		t.Fatalf("after complete: status=%s completedAt=%v", w.Status, w.CompletedAt)
	}
	first := *w.CompletedAt

	// Double tap: the second complete must not move the timestamp.
	db.now = func() time.Time { return first.Add(time.Hour) }
	if err := db.CompleteWorkout(ctx, id); err != nil {
		t.Fatalf("second complete: %v", err)
	}
	w, err = db.GetWorkout(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !w.CompletedAt.Equal(first) {
		t.Errorf("completedAt moved from %v to %v on double completion", first, *w.CompletedAt)
	}

	// Completing a missing workout is also a no-op.
	if err := db.CompleteWorkout(ctx, "no-such-id"); err != nil {
		t.Errorf("completing missing workout: %v", err)
	}
}

func TestDeleteWorkoutCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	exID := mustInsertExercise(t, db, "Deadlift")
	workoutID, _, err := db.StartOrResumePendingWorkout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	we, err := db.AddWorkoutExercise(ctx, workoutID, exID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.AddSet(ctx, we.ID); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteWorkout(ctx, workoutID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, table := range []string{"workouts", "workout_exercises", "workout_sets"} {
		var count int
		if err := db.sql.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("%s rows after cascade delete = %d, want 0", table, count)
		}
	}

	// The exercise itself survives the cascade.
	if _, err := db.GetExercise(ctx, exID); err != nil {
		t.Errorf("exercise gone after workout delete: %v", err)
	}
}

func TestDiscardOnlyTouchesPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, _, err := db.StartOrResumePendingWorkout(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.CompleteWorkout(ctx, id); err != nil {
		t.Fatal(err)
	}

	if err := db.DiscardPendingWorkout(ctx, id); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := db.GetWorkout(ctx, id); errors.Is(err, ErrNotFound) {
		t.Error("discard removed a completed workout")
	}
}
