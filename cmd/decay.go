package cmd

import (
	"context"
	"fmt"
	"time"

	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/signal"
	"ambi-feed/internal/storage"

	"github.com/spf13/cobra"
)

// decayCmd runs one decay sweep immediately, for all accounts or one.
var decayCmd = &cobra.Command{
	Use:   "decay [account-id]",
	Short: "Apply signal decay now instead of waiting for the sweep",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var ids []string
		if len(args) == 1 {
			ids = args
		} else {
			var err error
			ids, err = store.ListAccountIDs(ctx)
			if err != nil {
				return err
			}
		}

		now := time.Now()
		out := cmd.OutOrStdout()
		for _, id := range ids {
			acc, err := store.GetAccount(ctx, id)
			if err != nil {
				return err
			}
			before := len(acc.Signals)
			acc.Signals = signal.Decay(acc.Signals, now)
			if err := store.SaveAccount(ctx, acc); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d signals, %d dropped\n", id, len(acc.Signals), before-len(acc.Signals))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decayCmd)
}
