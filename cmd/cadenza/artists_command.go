package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cadenza/internal/api"
)

func newArtistsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "artists",
		Short: "Show artists still below the quality threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			svc := api.NewLibraryService(store, cfg.Enrichment.QualityThreshold)
			artists, err := svc.PendingArtists(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(artists) == 0 {
				fmt.Fprintln(out, "No artists pending enrichment")
				return nil
			}

			rows := make([][]string, 0, len(artists))
			for _, a := range artists {
				rows = append(rows, []string{
					a.Name,
					strings.Join(a.Genres, ", "),
					yesNo(a.IsComposer),
					a.EnrichmentSource,
					fmt.Sprintf("%.2f", a.QualityScore),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Artist", "Genres", "Composer", "Source", "Quality"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum artists to show")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
