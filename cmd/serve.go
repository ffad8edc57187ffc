package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ambi-feed/internal/ai"
	"ambi-feed/internal/ranking"
	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/storage"
	"ambi-feed/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the service workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		// Redis client
		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		decayInterval, err := time.ParseDuration(cfg.Decay.Interval)
		if err != nil {
			return fmt.Errorf("invalid decay.interval: %w", err)
		}
		buildInterval, err := time.ParseDuration(cfg.Feed.BuildInterval)
		if err != nil {
			return fmt.Errorf("invalid feed.build_interval: %w", err)
		}
		emergentWindow, err := time.ParseDuration(cfg.Feed.EmergentWindow)
		if err != nil {
			return fmt.Errorf("invalid feed.emergent_window: %w", err)
		}
		snapshotTTL, err := time.ParseDuration(cfg.Feed.SnapshotTTL)
		if err != nil {
			return fmt.Errorf("invalid feed.snapshot_ttl: %w", err)
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

		policy := ranking.Policy{
			SyncedThreshold: *cfg.Feed.SyncedThreshold,
			SyncedCap:       *cfg.Feed.SyncedCap,
			EmergentWindow:  emergentWindow,
		}

		decayWorker := &worker.DecayWorker{
			Store:    store,
			Interval: decayInterval,
		}
		builder := &worker.WaveBuilder{
			Store:       store,
			Interval:    buildInterval,
			PoolSize:    cfg.Feed.PoolSize,
			Policy:      policy,
			Intensity:   *cfg.Feed.DefaultIntensity,
			SnapshotTTL: snapshotTTL,
			Hinter:      hinter,
		}

		slog.Info("starting workers", "decay_interval", decayInterval, "build_interval", buildInterval, "hints", hinter != nil)
		mgr := worker.NewManager(decayWorker, builder)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		if err := mgr.Start(ctx); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
