package signal

import (
	"math"
	"testing"
	"time"

	"ambi-feed/internal/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestWeight(t *testing.T) {
	tests := []struct {
		action string
		want   float64
	}{
		{"VIEW", 1},
		{"SAVE", 2},
		{"REACT", 3},
		{"COMMENT", 5},
		{"MESSAGE", 8},
		{"SOMETHING_ELSE", 1},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := Weight(tt.action); got != tt.want {
				t.Errorf("Weight(%s) = %v, want %v", tt.action, got, tt.want)
			}
		})
	}
}

func TestTypeFor(t *testing.T) {
	tests := []struct {
		strength float64
		want     model.SignalType
	}{
		{0, model.SignalSoft},
		{5, model.SignalSoft}, // strict >
		{5.1, model.SignalActive},
		{20, model.SignalActive}, // strict >
		{20.1, model.SignalMutual},
		{100, model.SignalMutual},
	}
	for _, tt := range tests {
		if got := TypeFor(tt.strength); got != tt.want {
			t.Errorf("TypeFor(%v) = %v, want %v", tt.strength, got, tt.want)
		}
	}
}

func TestRecordCreatesLazily(t *testing.T) {
	tests := []struct {
		action       string
		wantStrength float64
		wantType     model.SignalType
	}{
		// the tier is derived from the initial strength, not fixed at SOFT
		{"MESSAGE", 8, model.SignalActive},
		{"VIEW", 1, model.SignalSoft},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			out := Record(nil, "ana", tt.action, testNow)
			if len(out) != 1 {
				t.Fatalf("expected 1 signal, got %d", len(out))
			}
			s := out[0]
			if s.Strength != tt.wantStrength || s.Type != tt.wantType || s.ConfidenceScore != 1.0 {
				t.Errorf("unexpected new signal: %+v", s)
			}
			if !s.LastActiveAt.Equal(testNow) {
				t.Errorf("LastActiveAt = %v, want %v", s.LastActiveAt, testNow)
			}
		})
	}
}

func TestRecordAccumulatesAndRetypes(t *testing.T) {
	var sigs []model.Signal
	for i := 0; i < 3; i++ {
		sigs = Record(sigs, "ben", "MESSAGE", testNow)
	}
	if len(sigs) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(sigs))
	}
	if sigs[0].Strength != 24 {
		t.Errorf("strength = %v, want 24", sigs[0].Strength)
	}
	if sigs[0].Type != model.SignalMutual {
		t.Errorf("type = %v, want MUTUAL", sigs[0].Type)
	}
}

func TestRecordClampsAtMax(t *testing.T) {
	sigs := []model.Signal{{TargetID: "cal", Strength: 99, Type: model.SignalMutual, LastActiveAt: testNow}}
	out := Record(sigs, "cal", "MESSAGE", testNow)
	if out[0].Strength != 100 {
		t.Errorf("strength = %v, want clamp at 100", out[0].Strength)
	}
}

func TestRecordDoesNotMutateInput(t *testing.T) {
	sigs := []model.Signal{{TargetID: "dee", Strength: 10, Type: model.SignalActive, LastActiveAt: testNow.Add(-time.Hour)}}
	_ = Record(sigs, "dee", "COMMENT", testNow)
	if sigs[0].Strength != 10 {
		t.Error("Record mutated its input")
	}
}

func TestDecayGracePeriod(t *testing.T) {
	sigs := Record(nil, "eva", "MESSAGE", testNow.Add(-11*time.Hour))
	out := Decay(sigs, testNow)
	if len(out) != 1 || out[0].Strength != sigs[0].Strength {
		t.Errorf("signal inside grace period changed: %+v", out)
	}
}

func TestDecayLogarithmic(t *testing.T) {
	sigs := []model.Signal{{TargetID: "fin", Strength: 10, Type: model.SignalActive, LastActiveAt: testNow.Add(-24 * time.Hour)}}
	out := Decay(sigs, testNow)
	want := 10 / (1 + math.Log(2)*0.5)
	if math.Abs(out[0].Strength-want) > 1e-9 {
		t.Errorf("strength = %v, want %v", out[0].Strength, want)
	}
	if out[0].Type != model.SignalActive {
		t.Errorf("type = %v, want ACTIVE", out[0].Type)
	}
}

func TestDecayNeverIncreases(t *testing.T) {
	sigs := []model.Signal{{TargetID: "gil", Strength: 50, Type: model.SignalMutual, LastActiveAt: testNow.Add(-48 * time.Hour)}}
	prev := sigs[0].Strength
	for i := 0; i < 50; i++ {
		sigs = Decay(sigs, testNow)
		if len(sigs) == 0 {
			return // fully faded out, the terminal state
		}
		if sigs[0].Strength >= prev {
			t.Fatalf("pass %d: strength %v did not decrease from %v", i, sigs[0].Strength, prev)
		}
		prev = sigs[0].Strength
	}
	t.Fatal("signal never faded below the drop threshold")
}

func TestDecayDropsFadedSignals(t *testing.T) {
	sigs := []model.Signal{
		{TargetID: "faded", Strength: 0.12, Type: model.SignalSoft, LastActiveAt: testNow.Add(-30 * 24 * time.Hour)},
		{TargetID: "alive", Strength: 40, Type: model.SignalMutual, LastActiveAt: testNow.Add(-24 * time.Hour)},
	}
	out := Decay(sigs, testNow)
	if len(out) != 1 || out[0].TargetID != "alive" {
		t.Fatalf("expected only the living signal, got %+v", out)
	}
}

func TestRecordThenImmediateDecayIsStable(t *testing.T) {
	sigs := Record(nil, "hana", "COMMENT", testNow)
	out := Decay(sigs, testNow)
	if len(out) != 1 || out[0].Strength != sigs[0].Strength {
		t.Errorf("fresh signal decayed: %+v", out)
	}
}

func TestDistanceBounds(t *testing.T) {
	if got := Distance(100); got != 60 {
		t.Errorf("Distance(100) = %v, want 60", got)
	}
	if got := Distance(0); got != 350 {
		t.Errorf("Distance(0) = %v, want 350", got)
	}
}

func TestDistanceMonotonic(t *testing.T) {
	prev := Distance(0)
	for s := 10.0; s <= 100; s += 10 {
		d := Distance(s)
		if d >= prev {
			t.Fatalf("Distance(%v) = %v, not below Distance at lower strength (%v)", s, d, prev)
		}
		prev = d
	}
}
