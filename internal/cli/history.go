package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liftlog/liftlog/internal/identity"
	"github.com/liftlog/liftlog/internal/models"
)

// NewHistoryCommand prints every set performed for an exercise across
// completed workouts, newest first.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <exercise name>",
		Short: "Show past sets for an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			exerciseID := identity.ExerciseID(args[0]).String()
			entries, err := db.ExerciseHistory(cmd.Context(), exerciseID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Printf("no completed sets for %q\n", args[0])
				return nil
			}

			lastWorkout := ""
			for _, e := range entries {
				if e.WorkoutID != lastWorkout {
					cmd.Printf("%s  %s\n", e.CompletedAt.Format("2006-01-02"), e.WorkoutName)
					lastWorkout = e.WorkoutID
				}
				cmd.Printf("  #%d  %s\n", e.Set.SortOrder+1, formatSet(e.Set))
			}
			return nil
		},
	}
}

func formatSet(s models.WorkoutSet) string {
	var parts []string
	if s.Weight != nil {
		parts = append(parts, fmt.Sprintf("%g kg", *s.Weight))
	}
	if s.Reps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *s.Reps))
	}
	if s.Distance != nil {
		parts = append(parts, fmt.Sprintf("%g km", *s.Distance))
	}
	if s.Seconds != nil {
		parts = append(parts, fmt.Sprintf("%ds", *s.Seconds))
	}
	if s.IsWarmUp {
		parts = append(parts, "warm-up")
	}
	if len(parts) == 0 {
		return "(blank)"
	}
	return strings.Join(parts, " · ")
}
