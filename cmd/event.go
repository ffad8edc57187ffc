package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ambi-feed/internal/attention"
	"ambi-feed/internal/model"
	"ambi-feed/internal/presence"
	"ambi-feed/internal/redisclient"
	"ambi-feed/internal/signal"
	"ambi-feed/internal/storage"

	"github.com/spf13/cobra"
)

var eventPostID string

// eventCmd records one interaction event: attention events mutate the
// post's stats and the author's lifetime counters; every qualifying event
// also strengthens the viewer's signal toward the author.
var eventCmd = &cobra.Command{
	Use:   "event <viewer-id> <type>",
	Short: "Record an interaction event (GLANCE, HOLD, RETURN, REACT, COMMENT, SHARE, VIEW, SAVE, MESSAGE)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		viewerID := args[0]
		evType := strings.ToUpper(strings.TrimSpace(args[1]))
		cfg := GetConfig()
		if eventPostID == "" {
			return fmt.Errorf("--post is required")
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		viewer, err := store.GetAccount(ctx, viewerID)
		if err != nil {
			return err
		}
		post, err := store.GetPost(ctx, eventPostID)
		if err != nil {
			return err
		}
		author, err := store.GetAccount(ctx, post.AuthorID)
		if err != nil {
			return err
		}

		now := time.Now()
		out := cmd.OutOrStdout()

		switch evType {
		case "GLANCE", "HOLD", "RETURN":
			next, v := attention.Apply(post.Attention, attention.EventType(evType), now)
			if !v.Valid {
				fmt.Fprintf(out, "event rejected: %s on %s within cooldown\n", evType, post.ID)
				return nil
			}
			post.Attention = next
			switch evType {
			case "GLANCE":
				author.Lifetime = presence.Accrue(author.Lifetime, presence.AccrueTime, 2)
			case "HOLD":
				author.Lifetime = presence.Accrue(author.Lifetime, presence.AccrueHold, 1)
				author.Lifetime = presence.Accrue(author.Lifetime, presence.AccrueTime, 10)
				// A sustained hold implies real interest in the author.
				viewer = emitSignal(viewer, post.AuthorID, "VIEW", now)
			case "RETURN":
				author.Lifetime = presence.Accrue(author.Lifetime, presence.AccrueTime, 5)
			}

		case "REACT", "COMMENT", "SHARE":
			n := 1
			if evType == "SHARE" {
				n = 3
			}
			post.Attention = attention.ApplyDeep(post.Attention, n)
			author.Lifetime = presence.Accrue(author.Lifetime, presence.AccrueInteraction, 1)
			viewer = emitSignal(viewer, post.AuthorID, evType, now)

		case "VIEW", "SAVE", "MESSAGE":
			if evType == "SAVE" {
				author.Lifetime = presence.Accrue(author.Lifetime, presence.AccrueCapsule, 1)
			}
			viewer = emitSignal(viewer, post.AuthorID, evType, now)

		default:
			return fmt.Errorf("unknown event type: %s", evType)
		}

		if err := store.SavePost(ctx, post); err != nil {
			return err
		}
		if viewer.ID == author.ID {
			// Self events still accrue lifetime presence.
			viewer.Lifetime = author.Lifetime
		}
		if err := store.SaveAccount(ctx, viewer); err != nil {
			return err
		}
		if viewer.ID != author.ID {
			if err := store.SaveAccount(ctx, author); err != nil {
				return err
			}
		}

		st := post.Attention
		mutual := false
		if s, ok := signal.Find(viewer.Signals, post.AuthorID); ok {
			mutual = s.Type == model.SignalMutual
		}
		fmt.Fprintf(out, "%s on %s: resonance=%.1f label=%q confidence=%.2f\n",
			evType, post.ID, st.ResonanceScore, attention.Label(st.ResonanceScore, mutual, st), st.ConfidenceScore)
		return nil
	},
}

// emitSignal strengthens the viewer's signal toward targetID and accrues a
// mutual-signal credit when the tier crosses into MUTUAL.
func emitSignal(viewer model.Account, targetID, action string, now time.Time) model.Account {
	if targetID == viewer.ID {
		return viewer
	}
	wasMutual := false
	if s, ok := signal.Find(viewer.Signals, targetID); ok {
		wasMutual = s.Type == model.SignalMutual
	}
	viewer.Signals = signal.Record(viewer.Signals, targetID, action, now)
	if s, ok := signal.Find(viewer.Signals, targetID); ok && !wasMutual && s.Type == model.SignalMutual {
		viewer.Lifetime = presence.Accrue(viewer.Lifetime, presence.AccrueSignal, 1)
	}
	return viewer
}

func init() {
	eventCmd.Flags().StringVar(&eventPostID, "post", "", "content item id the event targets")
	rootCmd.AddCommand(eventCmd)
}
