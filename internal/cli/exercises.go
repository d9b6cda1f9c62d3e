package cli

import (
	"github.com/spf13/cobra"
)

// NewExercisesCommand lists all canonical exercises.
func NewExercisesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List canonical exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			exercises, err := db.ListExercises(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range exercises {
				cmd.Printf("%s  %s\n", e.ID, e.Name)
			}
			return nil
		},
	}
}
