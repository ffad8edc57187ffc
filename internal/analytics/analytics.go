package analytics

import (
	"math"
	"sort"
	"time"

	"ambi-feed/internal/model"
)

// PulsePoint is one sample in a creator's daily pulse series.
type PulsePoint struct {
	Time      time.Time `json:"time"`
	Intensity float64   `json:"intensity"`
}

// CreatorAnalytics aggregates attention across a creator's items.
type CreatorAnalytics struct {
	DailyPulse   []PulsePoint            `json:"daily_pulse"`
	FatigueIndex float64                 `json:"fatigue_index"` // 0 fresh/deep, 100 noisy/fatigued
	PeakMoments  []string                `json:"peak_moments"`
	Insights     []model.PresenceInsight `json:"insights,omitempty"`
}

// Aggregate computes pulse and fatigue from a creator's items. Pure; the
// insight field is filled separately by the hint service when available.
func Aggregate(items []model.ContentItem) CreatorAnalytics {
	pulse := make([]PulsePoint, 0, len(items))
	var totalGlances, totalHolds, totalInteractions int
	for _, it := range items {
		pulse = append(pulse, PulsePoint{Time: it.CreatedAt, Intensity: it.Attention.ResonanceScore})
		totalGlances += it.Attention.Glances
		totalHolds += it.Attention.Holds
		totalInteractions += it.Attention.DeepInteractions
	}
	sort.Slice(pulse, func(i, j int) bool { return pulse[i].Time.Before(pulse[j].Time) })

	// High glance volume with low hold density reads as a noisy broadcast.
	holdDensity := 1.0
	if totalGlances > 0 {
		holdDensity = float64(totalHolds) / float64(totalGlances)
	}
	interactionDensity := 1.0
	if totalHolds > 0 {
		interactionDensity = float64(totalInteractions) / float64(totalHolds)
	}
	rawFatigue := (1 - (holdDensity*0.7 + interactionDensity*0.3)) * 100
	fatigue := math.Min(100, math.Max(0, rawFatigue))

	return CreatorAnalytics{
		DailyPulse:   pulse,
		FatigueIndex: fatigue,
		PeakMoments:  []string{"Twilight Sync", "Deep-Night Resonance"},
	}
}
