package cmd

import (
	"context"
	"fmt"
	"time"

	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/seed"
	"ambi-feed/internal/storage"

	"github.com/spf13/cobra"
)

// seedCmd loads a YAML fixture of accounts and posts into redis.
var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load accounts and posts from a YAML fixture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		f, err := seed.Load(args[0])
		if err != nil {
			return err
		}
		accounts, posts := f.Materialize(time.Now())

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, acc := range accounts {
			if err := store.SaveAccount(ctx, acc); err != nil {
				return fmt.Errorf("save account %s: %w", acc.ID, err)
			}
		}
		for _, p := range posts {
			if err := store.SavePost(ctx, p); err != nil {
				return fmt.Errorf("save post %s: %w", p.ID, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d accounts, %d posts\n", len(accounts), len(posts))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
