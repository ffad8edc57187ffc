package cmd

import (
	"context"
	"fmt"
	"time"

	"ambi-feed/internal/ai"
	"ambi-feed/internal/analytics"
	"ambi-feed/internal/model"
	"ambi-feed/internal/presence"
	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/storage"

	"github.com/spf13/cobra"
)

// insightsCmd prints creator analytics for an account: pulse, fatigue,
// presence labels, and qualitative insights (generated or fallback).
var insightsCmd = &cobra.Command{
	Use:   "insights <account-id>",
	Short: "Show creator analytics and presence insights for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID := args[0]
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		acc, err := store.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}
		pool, err := store.TopPosts(ctx, cfg.Feed.PoolSize)
		if err != nil {
			return err
		}
		var mine []model.ContentItem
		for _, it := range pool {
			if it.AuthorID == accountID {
				mine = append(mine, it)
			}
		}

		var hinter ai.Hinter
		if cfg.OpenAI.APIKey != "" {
			hintTTL, err := time.ParseDuration(cfg.OpenAI.HintTTL)
			if err != nil {
				return fmt.Errorf("invalid openai.hint_ttl: %w", err)
			}
			hinter = ai.NewOpenAI(ai.Config{
				APIKey:  cfg.OpenAI.APIKey,
				Model:   cfg.OpenAI.Model,
				BaseURL: cfg.OpenAI.BaseURL,
			}, ai.NewCache(hintTTL, nil))
		}

		agg := analytics.Aggregate(mine)
		agg.Insights = ai.InsightsOrFallback(ctx, hinter, mine)

		era := presence.Classify(acc.Lifetime)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s · %s\n", acc.ID, era.Name)
		fmt.Fprintf(out, "presence: %s\n", presence.PresenceLabel(acc.Lifetime))
		fmt.Fprintf(out, "impact:   %s\n", presence.ImpactLabel(acc.Lifetime))
		fmt.Fprintf(out, "fatigue index: %.1f over %d items\n", agg.FatigueIndex, len(mine))
		for _, in := range agg.Insights {
			fmt.Fprintf(out, "  [%s/%s] %s · %s\n", in.Type, in.Intensity, in.Title, in.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
