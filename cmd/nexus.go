package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/signal"
	"ambi-feed/internal/storage"

	"github.com/spf13/cobra"
)

// nexusCmd prints an account's signals as nexus coordinates: strongest
// signals pull closest to the center.
var nexusCmd = &cobra.Command{
	Use:   "nexus <account-id>",
	Short: "Show an account's signals with nexus distances",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		acc, err := store.GetAccount(ctx, args[0])
		if err != nil {
			return err
		}
		sigs := make([]struct {
			target   string
			strength float64
			tier     string
			distance float64
		}, 0, len(acc.Signals))
		for _, s := range acc.Signals {
			sigs = append(sigs, struct {
				target   string
				strength float64
				tier     string
				distance float64
			}{s.TargetID, s.Strength, string(s.Type), signal.Distance(s.Strength)})
		}
		sort.Slice(sigs, func(i, j int) bool { return sigs[i].strength > sigs[j].strength })

		out := cmd.OutOrStdout()
		for _, s := range sigs {
			fmt.Fprintf(out, "%-16s %-7s strength=%5.1f distance=%5.1f\n", s.target, s.tier, s.strength, s.distance)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nexusCmd)
}
