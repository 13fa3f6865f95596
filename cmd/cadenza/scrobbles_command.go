package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cadenza/internal/api"
)

func newScrobblesCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var offset int

	cmd := &cobra.Command{
		Use:   "scrobbles [user]",
		Short: "Show enriched listening history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			user, err := ctx.resolveUser(args)
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			svc := api.NewLibraryService(store, cfg.Enrichment.QualityThreshold)
			scrobbles, err := svc.Scrobbles(cmd.Context(), user, limit, offset)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(scrobbles) == 0 {
				fmt.Fprintf(out, "No scrobbles recorded for %s\n", user)
				return nil
			}

			rows := make([][]string, 0, len(scrobbles))
			for _, s := range scrobbles {
				rows = append(rows, []string{
					formatListenedAt(s.ListenedAt),
					s.Artist,
					s.Track,
					s.ComposerName,
					strings.Join(s.Genres, ", "),
					fmt.Sprintf("%.2f", s.QualityScore),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Listened", "Artist", "Track", "Composer", "Genres", "Quality"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum scrobbles to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "Scrobbles to skip from the newest")
	return cmd
}

func formatListenedAt(value string) string {
	parsed, err := time.Parse("2006-01-02T15:04:05.000Z07:00", value)
	if err != nil {
		return value
	}
	return parsed.Local().Format("2006-01-02 15:04")
}
