package presence

import (
	"ambi-feed/internal/model"
)

// Era is the coarse display classification of an account's lifetime
// engagement.
type Era struct {
	Name  string
	Color string
}

// Classify maps lifetime counters to an era. Attention time is weighted
// down to minutes, deep holds doubled, mutual signals boosted heavily.
func Classify(lt model.LifetimeAttention) Era {
	score := lt.TotalAttentionTime/60 + lt.TotalDeepHolds*2 + float64(lt.TotalMutualSignals)*10
	switch {
	case score > 2000:
		return Era{Name: "Luminous Era", Color: "#FFFFFF"}
	case score > 800:
		return Era{Name: "Anchored Era", Color: "#E8D5C4"}
	case score > 200:
		return Era{Name: "Lingering Era", Color: "#D4C4E8"}
	default:
		return Era{Name: "Ethereal Era", Color: "#C4E8D5"}
	}
}

// AccrualKind names one lifetime counter bump.
type AccrualKind string

const (
	AccrueTime        AccrualKind = "TIME"    // seconds of attention received
	AccrueHold        AccrualKind = "HOLD"    // one deep hold
	AccrueSignal      AccrualKind = "SIGNAL"  // a signal became mutual
	AccrueCapsule     AccrualKind = "CAPSULE" // a capsule was saved
	AccrueInteraction AccrualKind = "INTERACTION"
)

// Accrue bumps one lifetime counter and recomputes the derived era fields.
// Counters are monotonically non-decreasing; negative values are ignored.
// Returns a new value; the input is never mutated.
func Accrue(lt model.LifetimeAttention, kind AccrualKind, value float64) model.LifetimeAttention {
	if value < 0 {
		value = 0
	}
	next := lt
	switch kind {
	case AccrueTime:
		next.TotalAttentionTime += value
	case AccrueHold:
		next.TotalDeepHolds += value
	case AccrueSignal:
		next.TotalMutualSignals += int(value)
	case AccrueCapsule:
		next.TotalCapsulesSaved += int(value)
	case AccrueInteraction:
		// Deep interactions count as half a hold.
		next.TotalDeepHolds += 0.5
	}
	era := Classify(next)
	next.PresenceEra = era.Name
	next.EraColor = era.Color
	return next
}

// PresenceLabel describes how the account's received attention reads.
func PresenceLabel(lt model.LifetimeAttention) string {
	switch {
	case lt.TotalDeepHolds > 500:
		return "a presence that anchors the drift"
	case lt.TotalAttentionTime > 10000:
		return "your signals have become a landscape"
	case lt.TotalDeepHolds > 100:
		return "people linger in your resonance"
	case lt.TotalAttentionTime > 3600:
		return "a steady frequency in a noisy world"
	default:
		return "a freshly manifested essence"
	}
}

// ImpactLabel describes the account's footprint in the collective.
func ImpactLabel(lt model.LifetimeAttention) string {
	switch {
	case lt.TotalCapsulesSaved > 50:
		return "leaving ripples that outlast the moment"
	case lt.TotalMutualSignals > 20:
		return "deeply woven into the collective fabric"
	case lt.TotalCapsulesSaved > 5:
		return "your artifacts are cherished anchors"
	default:
		return "building a quiet, intentional impact"
	}
}
