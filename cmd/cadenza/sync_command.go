package main

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"cadenza/internal/logging"
	"cadenza/internal/notifications"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var trackLimit int
	var aiLimit int

	cmd := &cobra.Command{
		Use:   "sync [user]",
		Short: "Fetch recent plays and enrich them",
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

			// One sync per database at a time.
			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire sync lock: %w", err)
			}
			if !locked {
				return errors.New("another sync is already running against this library")
			}
			defer lock.Unlock()

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			orch, err := ctx.buildOrchestrator(store, logger)
			if err != nil {
				return err
			}

			tracks := trackLimit
			if !cmd.Flags().Changed("tracks") {
				tracks = cfg.Enrichment.TrackLimit
			}
			ai := aiLimit
			if !cmd.Flags().Changed("ai") {
				ai = cfg.Enrichment.AICallLimit
			}

			notifier := notifications.NewService(cfg)
			result, err := orch.SyncUser(cmd.Context(), user, tracks, ai)
			if err != nil {
				if notifyErr := notifier.NotifyError(cmd.Context(), err, "sync"); notifyErr != nil {
					logger.Warn("notification failed", logging.Error(notifyErr))
				}
				return err
			}
			if notifyErr := notifier.NotifySyncCompleted(cmd.Context(), user, result); notifyErr != nil {
				logger.Warn("notification failed", logging.Error(notifyErr))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sync %s complete for %s\n", result.RunID, user)
			fmt.Fprintf(out, "  Tracks processed:   %d\n", result.TracksProcessed)
			fmt.Fprintf(out, "  Scrobbles recorded: %d\n", result.ScrobblesRecorded)
			fmt.Fprintf(out, "  AI artists:         %d\n", result.ArtistsEnrichedAI)
			fmt.Fprintf(out, "  AI classical:       %d\n", result.ClassicalEnriched)
			fmt.Fprintf(out, "  AI calls used:      %d\n", result.AICallsUsed)
			if result.AIBudgetExhausted {
				fmt.Fprintln(out, "  AI budget exhausted; remaining candidates deferred to the next run")
			}
			if result.EnrichmentFailures > 0 {
				fmt.Fprintf(out, "  Enrichment failures: %d (see log for details)\n", result.EnrichmentFailures)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&trackLimit, "tracks", 0, "Number of recent plays to fetch")
	cmd.Flags().IntVar(&aiLimit, "ai", 0, "Maximum paid AI calls for this run (0 disables)")
	return cmd
}
