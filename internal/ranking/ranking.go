package ranking

import (
	"math"
	"sort"
	"strconv"
	"time"

	"ambi-feed/internal/attention"
	"ambi-feed/internal/model"
	"ambi-feed/internal/signal"
)

const (
	// Items with fewer glances than this keep a quality multiplier of 1.0:
	// a discovery grace period for low-traffic new items.
	discoveryGraceGlances = 50
	// Center and steepness of the quality squeeze logistic.
	squeezeCenter    = 0.08
	squeezeSteepness = 20
)

// Policy holds the wave partitioning parameters. The synced threshold and
// cap are untuned product constants, so they are configuration rather than
// law.
type Policy struct {
	SyncedThreshold float64
	SyncedCap       int
	EmergentWindow  time.Duration
}

// DefaultPolicy returns the original tuning.
func DefaultPolicy() Policy {
	return Policy{
		SyncedThreshold: 200,
		SyncedCap:       5,
		EmergentWindow:  30 * time.Minute,
	}
}

// hashString is a stable 32-bit polynomial rolling hash. Unsigned, so the
// result is always non-negative.
func hashString(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}

// qualitySqueeze smoothly penalizes items whose engagement is broad but
// shallow. Returns a multiplier approaching 1.0 for healthy hold ratios
// and dropping steeply for ratios below the center once an item has left
// the discovery grace period.
func qualitySqueeze(stats model.AttentionStats) float64 {
	if stats.Glances < discoveryGraceGlances {
		return 1.0
	}
	ratio := float64(stats.Holds) / float64(stats.Glances)
	return 1 / (1 + math.Exp(-squeezeSteepness*(ratio-squeezeCenter)))
}

// Score computes the blended ranking score for one item: quality-adjusted
// resonance, the sanctuary/drift affinity blend, freshness, and a
// deterministic per-viewer daily jitter.
//
// Intensity is the single user-facing tuning control in [0,100]: low values
// bias toward the viewer's existing relationships, high values toward
// globally resonant content.
func Score(item model.ContentItem, signals []model.Signal, viewerID string, intensity float64, now time.Time) float64 {
	iFactor := intensity / 100

	score := item.Attention.ResonanceScore * 0.5 * qualitySqueeze(item.Attention)

	strength := 0.0
	if item.AuthorID == viewerID {
		strength = signal.MaxStrength
	} else if s, ok := signal.Find(signals, item.AuthorID); ok {
		strength = s.Strength
	}
	sanctuaryWeight := (1 - iFactor) * 5.0
	driftWeight := iFactor * 2.5
	score += strength * sanctuaryWeight
	score += item.Attention.ResonanceScore * driftWeight

	hoursOld := now.Sub(item.CreatedAt).Hours()
	score += math.Max(0, 100-hoursOld*5)

	score += jitter(viewerID, item.ID, now)

	return score
}

// jitter derives a deterministic pseudo-random boost in [0,10): stable for
// one viewer within one calendar day, varying across viewers and days.
func jitter(viewerID, itemID string, now time.Time) float64 {
	dayIndex := now.UnixMilli() / (24 * 60 * 60 * 1000)
	userSeed := hashString(viewerID + strconv.FormatInt(dayIndex, 10))
	itemSeed := hashString(itemID)
	return float64((userSeed^itemSeed)%100) / 10
}

// Rank scores the content pool for a viewer and partitions the sorted
// result into waves. Deterministic for a given pool, signal map, viewer,
// intensity, and calendar day.
func Rank(items []model.ContentItem, signals []model.Signal, viewerID string, intensity float64, now time.Time, p Policy) []model.Wave {
	scored := make([]model.WithScore, 0, len(items))
	for _, it := range items {
		scored = append(scored, model.WithScore{
			Item:  it,
			Score: Score(it, signals, viewerID, intensity, now),
			Fresh: now.Sub(it.CreatedAt) < p.EmergentWindow,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	var synced, emergent, drift []model.ContentItem
	for _, ws := range scored {
		switch {
		case ws.Score > p.SyncedThreshold:
			// Overflow beyond the cap is dropped from the pass entirely,
			// not demoted into a later wave.
			if len(synced) < p.SyncedCap {
				synced = append(synced, ws.Item)
			}
		case ws.Fresh:
			emergent = append(emergent, ws.Item)
		default:
			drift = append(drift, ws.Item)
		}
	}

	waves := []model.Wave{
		{Label: "Wave 01: Synced", Description: "Direct resonance from your inner circle.", Items: synced},
		{Label: "Wave 02: Emergent", Description: "New signals manifesting in the collective.", Items: emergent},
		{Label: "Wave 03: The Drift", Description: "Lingering echoes from the wider collective.", Items: drift},
	}
	out := waves[:0]
	for _, w := range waves {
		if len(w.Items) > 0 {
			out = append(out, w)
		}
	}
	return out
}

// WaveHint is the local heuristic explanation for why an item surfaced.
// Used as-is when the generative hint service is absent.
func WaveHint(item model.ContentItem, viewerID string, strength float64) string {
	if item.AuthorID == viewerID {
		return "Sanctuary Anchor"
	}
	if strength > 60 {
		return "Sustained Sync"
	}
	if attention.HoldRatio(item.Attention) > 0.6 {
		return "Intentional Resonance"
	}
	return "Converging Signal"
}
