package signal

import (
	"math"
	"time"

	"ambi-feed/internal/model"
)

const (
	// MaxStrength caps a signal's strength.
	MaxStrength = 100.0
	// Signals whose decayed strength falls to or below this are dropped.
	dropThreshold = 0.1
	// Decay grace period in days: very recent signals are left untouched.
	graceDays = 0.5

	// Nexus distance mapping bounds.
	innerBound = 60.0
	// DefaultMaxRadius is the outer bound of the nexus distance mapping.
	DefaultMaxRadius = 350.0
)

var actionWeights = map[string]float64{
	"VIEW":    1,
	"SAVE":    2,
	"REACT":   3,
	"COMMENT": 5,
	"MESSAGE": 8,
}

// Weight returns the strength increment for an action type. Unknown
// actions count as a plain view.
func Weight(action string) float64 {
	if w, ok := actionWeights[action]; ok {
		return w
	}
	return 1
}

// TypeFor derives the signal tier from current strength.
func TypeFor(strength float64) model.SignalType {
	switch {
	case strength > 20:
		return model.SignalMutual
	case strength > 5:
		return model.SignalActive
	default:
		return model.SignalSoft
	}
}

// Record applies one interaction toward targetID and returns a new signal
// slice; the input is never mutated. The signal is created lazily on the
// first qualifying interaction.
func Record(signals []model.Signal, targetID, action string, now time.Time) []model.Signal {
	w := Weight(action)

	for i, s := range signals {
		if s.TargetID != targetID {
			continue
		}
		out := make([]model.Signal, len(signals))
		copy(out, signals)
		next := s
		next.Strength = math.Min(MaxStrength, s.Strength+w)
		next.LastActiveAt = now
		next.Type = TypeFor(next.Strength)
		next.ConfidenceScore = 1.0
		out[i] = next
		return out
	}

	out := make([]model.Signal, len(signals), len(signals)+1)
	copy(out, signals)
	return append(out, model.Signal{
		TargetID:        targetID,
		Strength:        w,
		LastActiveAt:    now,
		Type:            TypeFor(w),
		ConfidenceScore: 1.0,
	})
}

// Decay applies time-based logarithmic decay to every signal and filters
// out the ones that have faded away. This is the sole deletion path for
// signals. Returns a new slice; the input is never mutated.
//
// Decay is aggressive at first and flattens over time, modeling long-tail
// relationship persistence.
func Decay(signals []model.Signal, now time.Time) []model.Signal {
	out := make([]model.Signal, 0, len(signals))
	for _, s := range signals {
		next := s
		daysSince := now.Sub(s.LastActiveAt).Hours() / 24
		if daysSince >= graceDays {
			factor := 1 / (1 + math.Log(daysSince+1)*0.5)
			next.Strength = math.Max(0, s.Strength*factor)
			next.Type = TypeFor(next.Strength)
		}
		if next.Strength <= dropThreshold {
			continue
		}
		out = append(out, next)
	}
	return out
}

// Find returns the signal toward targetID, if present.
func Find(signals []model.Signal, targetID string) (model.Signal, bool) {
	for _, s := range signals {
		if s.TargetID == targetID {
			return s, true
		}
	}
	return model.Signal{}, false
}

// Distance maps signal strength to a radial distance for the nexus view
// using the default outer bound.
func Distance(strength float64) float64 {
	return DistanceWithRadius(strength, DefaultMaxRadius)
}

// DistanceWithRadius maps strength to a distance in [innerBound, maxRadius].
// A power curve pulls strong signals much tighter to the center, keeping
// clear separation between high and low resonance.
func DistanceWithRadius(strength, maxRadius float64) float64 {
	normalized := math.Min(MaxStrength, math.Max(0, strength)) / MaxStrength
	factor := math.Pow(1-normalized, 1.2)
	return innerBound + factor*(maxRadius-innerBound)
}
