package cli

import (
	"github.com/spf13/cobra"

	"github.com/liftlog/liftlog/internal/importer"
)

// NewImportCommand ingests a CSV history export.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV workout history export (one atomic transaction)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, log, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			imp := importer.New(db, log)
			counts, err := imp.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if counts.Skipped {
				cmd.Println("import skipped: history was already imported")
				return nil
			}
			cmd.Printf("imported %d workouts, %d exercises performed, %d sets (%d distinct exercise names)\n",
				counts.Workouts, counts.WorkoutExercises, counts.Sets, counts.ExercisesSeen)
			return nil
		},
	}
}
