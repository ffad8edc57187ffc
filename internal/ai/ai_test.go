package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"ambi-feed/internal/model"
)

func TestCacheTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewCache(time.Hour, clock)

	if _, ok := c.Get("k"); ok {
		t.Fatal("empty cache returned a hit")
	}
	c.Set("k", "v")
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("expected hit, got %q/%v", v, ok)
	}

	now = now.Add(59 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry survived past its TTL")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	c.Set("k", "v")
	if _, ok := c.Get("k"); ok {
		t.Fatal("nil cache returned a hit")
	}
}

type failingHinter struct{}

func (failingHinter) RelevanceHint(context.Context, model.ContentItem, string) (string, error) {
	return "", errors.New("service unavailable")
}

func (failingHinter) PresenceInsights(context.Context, []model.ContentItem) ([]model.PresenceInsight, error) {
	return nil, errors.New("service unavailable")
}

type fixedHinter struct{ hint string }

func (f fixedHinter) RelevanceHint(context.Context, model.ContentItem, string) (string, error) {
	return f.hint, nil
}

func (f fixedHinter) PresenceInsights(context.Context, []model.ContentItem) ([]model.PresenceInsight, error) {
	return []model.PresenceInsight{{ID: "x", Title: f.hint}}, nil
}

func TestHintOrFallback(t *testing.T) {
	ctx := context.Background()
	it := model.ContentItem{ID: "p1", AuthorID: "a"}

	if got := HintOrFallback(ctx, nil, it, "reason"); got != FallbackHint {
		t.Errorf("nil hinter: got %q, want fallback", got)
	}
	if got := HintOrFallback(ctx, failingHinter{}, it, "reason"); got != FallbackHint {
		t.Errorf("failing hinter: got %q, want fallback", got)
	}
	if got := HintOrFallback(ctx, fixedHinter{hint: "drawn by quiet gravity"}, it, "reason"); got != "drawn by quiet gravity" {
		t.Errorf("working hinter: got %q", got)
	}
}

func TestInsightsOrFallback(t *testing.T) {
	ctx := context.Background()

	got := InsightsOrFallback(ctx, nil, nil)
	if len(got) != len(FallbackInsights) || got[0].Title != "Steady Drift" {
		t.Errorf("nil hinter: got %+v, want static insights", got)
	}
	if got := InsightsOrFallback(ctx, failingHinter{}, nil); len(got) == 0 || got[0].ID != "fallback" {
		t.Errorf("failing hinter: got %+v, want static insights", got)
	}
	if got := InsightsOrFallback(ctx, fixedHinter{hint: "ok"}, nil); len(got) != 1 || got[0].Title != "ok" {
		t.Errorf("working hinter: got %+v", got)
	}
}
