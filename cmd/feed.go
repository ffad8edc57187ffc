package cmd

import (
	"context"
	"fmt"
	"time"

	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/storage"

	"github.com/spf13/cobra"
)

var feedDay string

// feedCmd prints the cached wave snapshot for a viewer. Snapshots are
// built by the wave builder worker; when none exists yet, `rank` forces
// a fresh pass.
var feedCmd = &cobra.Command{
	Use:   "feed <viewer-id>",
	Short: "Show the viewer's cached wave snapshot for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		viewerID := args[0]
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		day := feedDay
		if day == "" {
			day = time.Now().UTC().Format("2006-01-02")
		}
		snap, ok, err := store.GetWaves(ctx, viewerID, day)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no snapshot for %s on %s; run the serve workers or `rank %s`", viewerID, day, viewerID)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "viewer %s · %s · intensity %.0f · built %s\n",
			snap.AccountID, snap.Day, snap.Intensity, snap.BuiltAt.UTC().Format("15:04"))
		for _, w := range snap.Waves {
			fmt.Fprintf(out, "\n%s · %s\n", w.Label, w.Description)
			for _, it := range w.Items {
				fmt.Fprintf(out, "  %-12s %-10s res=%.1f  %s\n",
					it.Post.ID, it.Post.AuthorID, it.Post.Attention.ResonanceScore, excerpt(it.Post.Content))
				fmt.Fprintf(out, "               %s\n", it.Hint)
			}
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().StringVar(&feedDay, "day", "", "snapshot day as YYYY-MM-DD (defaults to today, UTC)")
	rootCmd.AddCommand(feedCmd)
}
