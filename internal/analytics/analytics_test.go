package analytics

import (
	"math"
	"testing"
	"time"

	"ambi-feed/internal/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func item(id string, age time.Duration, glances, holds, deep int) model.ContentItem {
	stats := model.AttentionStats{Glances: glances, Holds: holds, DeepInteractions: deep, ConfidenceScore: 1}
	return model.ContentItem{ID: id, AuthorID: "creator", CreatedAt: testNow.Add(-age), Attention: stats}
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)
	if agg.FatigueIndex != 0 {
		t.Errorf("fatigue of no items = %v, want 0", agg.FatigueIndex)
	}
	if len(agg.DailyPulse) != 0 {
		t.Errorf("pulse of no items = %v", agg.DailyPulse)
	}
}

func TestAggregatePulseSorted(t *testing.T) {
	items := []model.ContentItem{
		item("late", time.Hour, 5, 1, 0),
		item("early", 48*time.Hour, 5, 1, 0),
		item("middle", 24*time.Hour, 5, 1, 0),
	}
	agg := Aggregate(items)
	if len(agg.DailyPulse) != 3 {
		t.Fatalf("pulse length = %d, want 3", len(agg.DailyPulse))
	}
	for i := 1; i < len(agg.DailyPulse); i++ {
		if agg.DailyPulse[i].Time.Before(agg.DailyPulse[i-1].Time) {
			t.Fatal("pulse not sorted by time ascending")
		}
	}
}

func TestAggregateFatigue(t *testing.T) {
	tests := []struct {
		name  string
		items []model.ContentItem
		want  float64
	}{
		{
			// broad shallow broadcast: high glances, thin holds, no depth
			name:  "noisy creator",
			items: []model.ContentItem{item("a", time.Hour, 1000, 10, 0)},
			want:  (1 - (0.01 * 0.7)) * 100,
		},
		{
			// every glance converts: fatigue bottoms out
			name:  "deep creator",
			items: []model.ContentItem{item("b", time.Hour, 10, 10, 10)},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.items)
			if math.Abs(agg.FatigueIndex-tt.want) > 1e-9 {
				t.Errorf("fatigue = %v, want %v", agg.FatigueIndex, tt.want)
			}
		})
	}
}

func TestAggregateFatigueBounds(t *testing.T) {
	agg := Aggregate([]model.ContentItem{item("a", time.Hour, 100000, 1, 0)})
	if agg.FatigueIndex < 0 || agg.FatigueIndex > 100 {
		t.Errorf("fatigue %v outside [0,100]", agg.FatigueIndex)
	}
}
