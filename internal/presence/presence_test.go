package presence

import (
	"testing"

	"ambi-feed/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		lt        model.LifetimeAttention
		wantEra   string
		wantColor string
	}{
		{"fresh account", model.LifetimeAttention{}, "Ethereal Era", "#C4E8D5"},
		// 20 mutuals score exactly 200: strict threshold keeps it Ethereal
		{"boundary", model.LifetimeAttention{TotalMutualSignals: 20}, "Ethereal Era", "#C4E8D5"},
		{"lingering", model.LifetimeAttention{TotalMutualSignals: 21}, "Lingering Era", "#D4C4E8"},
		{"anchored", model.LifetimeAttention{TotalMutualSignals: 81}, "Anchored Era", "#E8D5C4"},
		{"luminous", model.LifetimeAttention{TotalMutualSignals: 201}, "Luminous Era", "#FFFFFF"},
		{"time weighted down", model.LifetimeAttention{TotalAttentionTime: 12600}, "Lingering Era", "#D4C4E8"},
		{"holds weighted double", model.LifetimeAttention{TotalDeepHolds: 101}, "Lingering Era", "#D4C4E8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			era := Classify(tt.lt)
			if era.Name != tt.wantEra || era.Color != tt.wantColor {
				t.Errorf("Classify = %+v, want %s/%s", era, tt.wantEra, tt.wantColor)
			}
		})
	}
}

func TestAccrue(t *testing.T) {
	lt := model.LifetimeAttention{}

	lt = Accrue(lt, AccrueTime, 10)
	if lt.TotalAttentionTime != 10 {
		t.Errorf("attention time = %v, want 10", lt.TotalAttentionTime)
	}
	if lt.PresenceEra != "Ethereal Era" {
		t.Errorf("era not recomputed: %q", lt.PresenceEra)
	}

	lt = Accrue(lt, AccrueHold, 1)
	lt = Accrue(lt, AccrueInteraction, 1)
	if lt.TotalDeepHolds != 1.5 {
		t.Errorf("deep holds = %v, want 1.5 (interaction counts half)", lt.TotalDeepHolds)
	}

	lt = Accrue(lt, AccrueSignal, 25)
	if lt.TotalMutualSignals != 25 {
		t.Errorf("mutual signals = %v, want 25", lt.TotalMutualSignals)
	}
	if lt.PresenceEra != "Lingering Era" || lt.EraColor != "#D4C4E8" {
		t.Errorf("era after mutuals = %s/%s, want Lingering", lt.PresenceEra, lt.EraColor)
	}

	lt = Accrue(lt, AccrueCapsule, 2)
	if lt.TotalCapsulesSaved != 2 {
		t.Errorf("capsules = %v, want 2", lt.TotalCapsulesSaved)
	}
}

func TestAccrueIgnoresNegative(t *testing.T) {
	lt := Accrue(model.LifetimeAttention{TotalAttentionTime: 50}, AccrueTime, -20)
	if lt.TotalAttentionTime != 50 {
		t.Errorf("counters must be monotonically non-decreasing, got %v", lt.TotalAttentionTime)
	}
}

func TestPresenceLabelLadder(t *testing.T) {
	tests := []struct {
		name string
		lt   model.LifetimeAttention
		want string
	}{
		{"fresh", model.LifetimeAttention{}, "a freshly manifested essence"},
		{"steady", model.LifetimeAttention{TotalAttentionTime: 4000}, "a steady frequency in a noisy world"},
		{"lingering", model.LifetimeAttention{TotalDeepHolds: 150}, "people linger in your resonance"},
		{"landscape", model.LifetimeAttention{TotalAttentionTime: 20000}, "your signals have become a landscape"},
		{"anchor", model.LifetimeAttention{TotalDeepHolds: 600}, "a presence that anchors the drift"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PresenceLabel(tt.lt); got != tt.want {
				t.Errorf("PresenceLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImpactLabelLadder(t *testing.T) {
	tests := []struct {
		name string
		lt   model.LifetimeAttention
		want string
	}{
		{"quiet", model.LifetimeAttention{}, "building a quiet, intentional impact"},
		{"cherished", model.LifetimeAttention{TotalCapsulesSaved: 6}, "your artifacts are cherished anchors"},
		{"woven", model.LifetimeAttention{TotalMutualSignals: 21}, "deeply woven into the collective fabric"},
		{"ripples", model.LifetimeAttention{TotalCapsulesSaved: 51}, "leaving ripples that outlast the moment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImpactLabel(tt.lt); got != tt.want {
				t.Errorf("ImpactLabel = %q, want %q", got, tt.want)
			}
		})
	}
}
