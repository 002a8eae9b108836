package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/cli"
)

func recommendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"recs"},
		Short:   "Prioritized recommendations across every area",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := opts.studentID()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return opts.withApp(ctx, func(a *app) error {
				recs := a.recommender.Recommend(ctx, id)
				out := cmd.OutOrStdout()
				if len(recs) == 0 {
					fmt.Fprintln(out, cli.FormatSuccess("All caught up. Nothing needs attention right now."))
					return nil
				}
				fmt.Fprintln(out, cli.RenderRecommendations(recs))
				return nil
			})
		},
	}
}
