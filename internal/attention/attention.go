package attention

import (
	"math"
	"time"

	"ambi-feed/internal/model"
)

// EventType names a discrete attention event emitted by the UI layer.
type EventType string

const (
	Glance EventType = "GLANCE"
	Hold   EventType = "HOLD"
	Return EventType = "RETURN"
)

const (
	// Minimum gap between counted returns. Rapid re-entry is not genuine
	// re-engagement.
	returnCooldown = 120 * time.Second
	// Glance count above which a zero-hold stream looks like scroll farming.
	lowTrustGlances = 50
)

// Validation is the outcome of screening one attention event. An invalid
// event is a normal negative result: the caller must not mutate stats.
type Validation struct {
	Valid      bool
	Confidence float64
}

// Validate screens an attention event against the item's current stats.
// It has no side effects; callers apply the result themselves.
func Validate(ev EventType, stats model.AttentionStats, now time.Time) Validation {
	if ev == Return && stats.LastReturnAt != nil && now.Sub(*stats.LastReturnAt) < returnCooldown {
		return Validation{Valid: false, Confidence: 0}
	}
	// Many passive views with zero holds: accept but distrust.
	if ev == Glance && stats.Glances > lowTrustGlances && stats.Holds == 0 {
		return Validation{Valid: true, Confidence: 0.2}
	}
	return Validation{Valid: true, Confidence: 1.0}
}

// Resonance converts attention counters into a single score. Weights
// escalate with interaction cost; confidence suppresses low-trust streams.
func Resonance(stats model.AttentionStats) float64 {
	base := float64(stats.Glances)*0.5 +
		float64(stats.Holds)*10 +
		float64(stats.Returns)*15 +
		float64(stats.DeepInteractions)*30
	conf := stats.ConfidenceScore
	if conf == 0 {
		// Unset confidence on freshly created stats counts as full trust.
		conf = 1
	}
	return base * conf
}

// HoldRatio is holds per glance. An item nobody has glanced at has no
// ratio yet; reporting zero keeps the function total and keeps hold-only
// histories out of the intent-pattern rules.
func HoldRatio(stats model.AttentionStats) float64 {
	if stats.Glances == 0 {
		return 0
	}
	return float64(stats.Holds) / float64(stats.Glances)
}

// FatigueRate is the inverse of hold ratio, floored at zero.
func FatigueRate(stats model.AttentionStats) float64 {
	return math.Max(0, 1.0-HoldRatio(stats))
}

// Label derives the qualitative attention label for an item. Pattern rules
// on the raw counters take priority over the score ladder. All comparisons
// are strict.
func Label(score float64, isMutual bool, stats model.AttentionStats) string {
	if FatigueRate(stats) > 0.8 && stats.Glances > 50 {
		return "Shallow Drift"
	}
	if HoldRatio(stats) > 0.6 {
		return "High Intent"
	}
	if isMutual && score > 50 {
		return "Synchronicity"
	}
	if score > 100 {
		return "Deep Resonance"
	}
	if score > 40 {
		return "Steady Echo"
	}
	if score > 10 {
		return "Active Signal"
	}
	if score > 0 {
		return "Quiet Attention"
	}
	return "Fresh Drift"
}

// Apply validates an attention event and, when accepted, returns stats with
// the matching counter bumped, confidence folded in, and resonance
// recomputed. Rejected events return the input stats untouched.
func Apply(stats model.AttentionStats, ev EventType, now time.Time) (model.AttentionStats, Validation) {
	v := Validate(ev, stats, now)
	if !v.Valid {
		return stats, v
	}
	next := stats
	switch ev {
	case Glance:
		next.Glances++
	case Hold:
		next.Holds++
	case Return:
		next.Returns++
		t := now
		next.LastReturnAt = &t
	}
	next.ConfidenceScore = clamp01((next.ConfidenceScore + v.Confidence) / 2)
	next.ResonanceScore = Resonance(next)
	return next, v
}

// ApplyDeep records n deep interactions (comment, share, explicit
// reaction) and recomputes resonance. Deep interactions bypass validation:
// they are already gated by higher-cost UI actions.
func ApplyDeep(stats model.AttentionStats, n int) model.AttentionStats {
	if n <= 0 {
		return stats
	}
	next := stats
	next.DeepInteractions += n
	next.ResonanceScore = Resonance(next)
	return next
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
