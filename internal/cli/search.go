package cli

import (
	"github.com/spf13/cobra"

	"github.com/liftlog/liftlog/internal/search"
)

// NewSearchCommand ranks exercises against a free-text query.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search exercises, blended with usage frequency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, _, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			exercises, err := db.ListExercises(ctx)
			if err != nil {
				return err
			}
			counts, err := db.UsageCounts(ctx)
			if err != nil {
				return err
			}

			candidates := make([]search.Candidate, len(exercises))
			for i, e := range exercises {
				candidates[i] = search.Candidate{ID: e.ID, Name: e.Name, Frequency: counts[e.ID]}
			}

			results := search.Rank(args[0], candidates, cfg.Search.FrequencyWeight)
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}
			for _, r := range results {
				cmd.Printf("%6d  %s\n", r.Score, r.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results to print (0 = all)")
	return cmd
}
