package cli

import (
	"github.com/spf13/cobra"

	"github.com/liftlog/liftlog/internal/seed"
)

// NewSeedCommand loads the reference exercise list into the store.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the bundled reference exercises (safe to re-run)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, log, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			var inserted int
			if cfg.Seed.Path != "" {
				inserted, err = seed.LoadFile(ctx, db, log, cfg.Seed.Path)
			} else {
				inserted, err = seed.Load(ctx, db, log)
			}
			if err != nil {
				return err
			}
			cmd.Printf("seeded %d new exercises\n", inserted)
			return nil
		},
	}
}
