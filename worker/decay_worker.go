package worker

import (
	"context"
	"log/slog"
	"time"

	"ambi-feed/internal/model"
	"ambi-feed/internal/signal"
	"ambi-feed/internal/storage"
)

// DecayWorker periodically sweeps every account's signals through decay,
// persisting the surviving set. Signals that have faded below the drop
// threshold disappear here; this sweep is their only deletion path.
type DecayWorker struct {
	Store    *storage.RedisStore
	Interval time.Duration
	Now      func() time.Time
}

func (w *DecayWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 6 * time.Hour
	}
	if w.Now == nil {
		w.Now = time.Now
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// initial run
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *DecayWorker) runOnce(ctx context.Context) {
	ids, err := w.Store.ListAccountIDs(ctx)
	if err != nil {
		slog.Error("decay sweep: list accounts failed.", "error", err)
		return
	}
	now := w.Now()
	var swept, dropped int
	for _, id := range ids {
		acc, err := w.Store.GetAccount(ctx, id)
		if err != nil {
			slog.Error("decay sweep: load account failed.", "account", id, "error", err)
			continue
		}
		next := signal.Decay(acc.Signals, now)
		dropped += len(acc.Signals) - len(next)
		if len(next) == len(acc.Signals) && unchanged(acc.Signals, next) {
			continue
		}
		acc.Signals = next
		if err := w.Store.SaveAccount(ctx, acc); err != nil {
			slog.Error("decay sweep: save account failed.", "account", id, "error", err)
			continue
		}
		swept++
	}
	slog.Info("decay sweep completed", "accounts", len(ids), "updated", swept, "signals_dropped", dropped)
}

// unchanged reports whether decay left every signal's strength as-is
// (all within the grace period).
func unchanged(before, after []model.Signal) bool {
	for i := range before {
		if before[i].Strength != after[i].Strength {
			return false
		}
	}
	return true
}
