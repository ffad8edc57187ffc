package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"ambi-feed/internal/ai"
	"ambi-feed/internal/attention"
	"ambi-feed/internal/digest"
	"ambi-feed/internal/model"
	"ambi-feed/internal/presence"
	"ambi-feed/internal/ranking"
	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/signal"
	"ambi-feed/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rankIntensity float64
	rankOutFile   string
	rankTitle     string
)

// rankCmd runs one ranking pass for a viewer, ignoring any cached
// snapshot, and prints or writes the resulting waves.
var rankCmd = &cobra.Command{
	Use:   "rank <viewer-id>",
	Short: "Force one ranking pass for a viewer and print the waves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		viewerID := args[0]
		cfg := GetConfig()
		if rankIntensity < 0 || rankIntensity > 100 {
			return fmt.Errorf("intensity must be in [0,100], got %v", rankIntensity)
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		acc, err := store.GetAccount(ctx, viewerID)
		if err != nil {
			return err
		}
		pool, err := store.TopPosts(ctx, cfg.Feed.PoolSize)
		if err != nil {
			return err
		}

		emergentWindow, err := time.ParseDuration(cfg.Feed.EmergentWindow)
		if err != nil {
			return fmt.Errorf("invalid feed.emergent_window: %w", err)
		}
		policy := ranking.Policy{
			SyncedThreshold: *cfg.Feed.SyncedThreshold,
			SyncedCap:       *cfg.Feed.SyncedCap,
			EmergentWindow:  emergentWindow,
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

		// Feed load semantics: decay first, then rank.
		now := time.Now()
		sigs := signal.Decay(acc.Signals, now)
		waves := ranking.Rank(pool, sigs, viewerID, rankIntensity, now, policy)

		if rankOutFile != "" {
			title := digest.ExpandVars(rankTitle, now)
			if title == "" {
				title = fmt.Sprintf("Waves for %s %s", viewerID, now.UTC().Format("2006-01-02"))
			}
			data := digest.Data{
				Title:    title,
				Viewer:   viewerID,
				Datetime: now.UTC().Format("2006-01-02 15:04"),
				Era:      acc.Lifetime.PresenceEra,
			}
			for _, w := range waves {
				dw := digest.Wave{Label: w.Label, Description: w.Description}
				for _, it := range w.Items {
					strength := 0.0
					if s, ok := signal.Find(sigs, it.AuthorID); ok {
						strength = s.Strength
					}
					reason := ranking.WaveHint(it, viewerID, strength)
					st := it.Attention
					mutual := signal.TypeFor(strength) == model.SignalMutual
					dw.Items = append(dw.Items, digest.Item{
						Author:  it.AuthorID,
						Excerpt: excerpt(it.Content),
						Hint:    ai.HintOrFallback(ctx, hinter, it, reason),
						Label:   attention.Label(st.ResonanceScore, mutual, st),
						Created: it.CreatedAt.UTC().Format("2006-01-02 15:04"),
					})
				}
				data.Waves = append(data.Waves, dw)
			}
			out, err := digest.Render(data)
			if err != nil {
				return err
			}
			if err := os.WriteFile(rankOutFile, []byte(out), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", rankOutFile)
			return nil
		}

		out := cmd.OutOrStdout()
		era := presence.Classify(acc.Lifetime)
		fmt.Fprintf(out, "viewer %s (%s) · intensity %.0f · %d pool items\n", viewerID, era.Name, rankIntensity, len(pool))
		for _, w := range waves {
			fmt.Fprintf(out, "\n%s · %s\n", w.Label, w.Description)
			for _, it := range w.Items {
				st := it.Attention
				fmt.Fprintf(out, "  %-12s %-10s res=%.1f  %s\n", it.ID, it.AuthorID, st.ResonanceScore, excerpt(it.Content))
			}
		}
		return nil
	},
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) > 60 {
		return string(r[:60]) + "…"
	}
	return s
}

func init() {
	rankCmd.Flags().Float64Var(&rankIntensity, "intensity", 50, "feed intensity, 0 (sanctuary) to 100 (drift)")
	rankCmd.Flags().StringVarP(&rankOutFile, "out", "o", "", "write a rendered digest to this file instead of printing")
	rankCmd.Flags().StringVar(&rankTitle, "title", "", "digest title template (supports {.CurrentDate})")
	rootCmd.AddCommand(rankCmd)
}
