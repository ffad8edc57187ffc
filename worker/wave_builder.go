package worker

import (
	"context"
	"log/slog"
	"time"

	"ambi-feed/internal/ai"
	"ambi-feed/internal/ranking"
	"ambi-feed/internal/signal"
	"ambi-feed/internal/storage"
)

// WaveBuilder periodically builds one wave snapshot per account per day:
// decayed signals in, ranked waves out, enriched with relevance hints.
// Hints come from the generative service when configured and fall back to
// the local heuristic otherwise; their absence never blocks the build.
type WaveBuilder struct {
	Store       *storage.RedisStore
	Interval    time.Duration
	PoolSize    int
	Policy      ranking.Policy
	Intensity   float64 // 0..100
	SnapshotTTL time.Duration
	Hinter      ai.Hinter
	Now         func() time.Time
}

func (w *WaveBuilder) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 15 * time.Minute
	}
	if w.PoolSize <= 0 {
		w.PoolSize = 200
	}
	if w.SnapshotTTL <= 0 {
		w.SnapshotTTL = 48 * time.Hour
	}
	if w.Now == nil {
		w.Now = time.Now
	}

	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *WaveBuilder) runOnce(ctx context.Context) {
	now := w.Now()
	day := now.UTC().Format("2006-01-02")

	ids, err := w.Store.ListAccountIDs(ctx)
	if err != nil {
		slog.Error("wave builder: list accounts failed.", "error", err)
		return
	}
	pool, err := w.Store.TopPosts(ctx, w.PoolSize)
	if err != nil {
		slog.Error("wave builder: fetch pool failed.", "error", err)
		return
	}

	for _, id := range ids {
		built, err := w.Store.IsBuilt(ctx, id, day)
		if err != nil {
			slog.Error("wave builder: built-check failed.", "account", id, "error", err)
			continue
		}
		if built {
			continue
		}
		acc, err := w.Store.GetAccount(ctx, id)
		if err != nil {
			slog.Error("wave builder: load account failed.", "account", id, "error", err)
			continue
		}

		// A build counts as a feed load: decay first, then rank. The decay
		// sweep persists; here the decayed view only shapes this pass.
		sigs := signal.Decay(acc.Signals, now)
		waves := ranking.Rank(pool, sigs, acc.ID, w.Intensity, now, w.Policy)

		snap := storage.WaveSnapshot{
			AccountID: acc.ID,
			Day:       day,
			BuiltAt:   now,
			Intensity: w.Intensity,
			Waves:     make([]storage.SnapshotWave, 0, len(waves)),
		}
		for _, wave := range waves {
			sw := storage.SnapshotWave{
				Label:       wave.Label,
				Description: wave.Description,
				Items:       make([]storage.SnapshotItem, 0, len(wave.Items)),
			}
			for _, it := range wave.Items {
				strength := 0.0
				if s, ok := signal.Find(sigs, it.AuthorID); ok {
					strength = s.Strength
				}
				reason := ranking.WaveHint(it, acc.ID, strength)
				sw.Items = append(sw.Items, storage.SnapshotItem{
					Post: it,
					Hint: ai.HintOrFallback(ctx, w.Hinter, it, reason),
				})
			}
			snap.Waves = append(snap.Waves, sw)
		}

		if err := w.Store.SaveWaves(ctx, snap, w.SnapshotTTL); err != nil {
			slog.Error("wave builder: save snapshot failed.", "account", id, "error", err)
			continue
		}
		if err := w.Store.MarkBuilt(ctx, id, day, w.SnapshotTTL); err != nil {
			slog.Error("wave builder: mark built failed.", "account", id, "error", err)
			continue
		}
		slog.Info("wave builder: snapshot built", "account", id, "day", day, "waves", len(snap.Waves))
	}
}
