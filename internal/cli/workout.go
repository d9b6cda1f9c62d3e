package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/reactive"
	"github.com/liftlog/liftlog/internal/storage"
)

// NewWorkoutCommand groups the workout lifecycle operations.
func NewWorkoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Start, complete, or discard workouts",
	}
	cmd.AddCommand(newWorkoutStartCommand(rootOpts))
	cmd.AddCommand(newWorkoutCompleteCommand(rootOpts))
	cmd.AddCommand(newWorkoutDiscardCommand(rootOpts))
	cmd.AddCommand(newWorkoutListCommand(rootOpts))
	cmd.AddCommand(newWorkoutWatchCommand(rootOpts))
	return cmd
}

func newWorkoutWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the pending workout as it changes (until interrupted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, log, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			sub, err := reactive.Subscribe(ctx, db, log,
				[]string{storage.TableWorkouts, storage.TableWorkoutExercises, storage.TableWorkoutSets},
				func(ctx context.Context) (*models.Workout, error) {
					return db.PendingWorkout(ctx)
				})
			if err != nil {
				return err
			}
			defer sub.Close()

			for {
				select {
				case <-ctx.Done():
					return nil
				case w := <-sub.Updates():
					if w == nil {
						cmd.Println("no pending workout")
						continue
					}
					cmd.Printf("%s  %s  started %s\n",
						w.ID, w.Name, w.StartedAt.Format("2006-01-02 15:04"))
				}
			}
		},
	}
}

func newWorkoutStartCommand(rootOpts *RootOptions) *cobra.Command {
	var templateID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a workout, or resume the pending one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			var id string
			var resumed bool
			if templateID != "" {
				id, resumed, err = db.StartPendingWorkoutFromTemplate(ctx, templateID)
			} else {
				id, resumed, err = db.StartOrResumePendingWorkout(ctx)
			}
			if err != nil {
				return err
			}
			if resumed {
				cmd.Printf("resumed pending workout %s\n", id)
			} else {
				cmd.Printf("started workout %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&templateID, "template", "", "start from a template id")
	return cmd
}

func newWorkoutCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a pending workout completed (no-op if already done)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()
			return db.CompleteWorkout(cmd.Context(), args[0])
		},
	}
}

func newWorkoutDiscardCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "discard <id>",
		Short: "Delete a pending workout and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()
			return db.DiscardPendingWorkout(cmd.Context(), args[0])
		},
	}
}

func newWorkoutListCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			workouts, err := db.ListWorkouts(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, w := range workouts {
				cmd.Printf("%s  %-9s  %s  %s\n",
					w.ID, w.Status, w.StartedAt.Format("2006-01-02 15:04"), w.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum workouts to list")
	return cmd
}
