package model

import (
	"fmt"
	"time"
)

// SignalType is the qualitative tier of a signal, derived from its strength.
type SignalType string

const (
	SignalSoft   SignalType = "SOFT"
	SignalActive SignalType = "ACTIVE"
	SignalMutual SignalType = "MUTUAL"
)

// AttentionStats holds per-item attention counters plus the derived
// resonance and confidence values. ResonanceScore is recomputed on every
// mutation; it is never authoritative on its own.
type AttentionStats struct {
	Glances          int        `json:"glances"`
	Holds            int        `json:"holds"`
	Returns          int        `json:"returns"`
	DeepInteractions int        `json:"deep_interactions"`
	ResonanceScore   float64    `json:"resonance_score"`
	ConfidenceScore  float64    `json:"confidence_score"`
	LastReturnAt     *time.Time `json:"last_return_at,omitempty"`
}

// NewAttentionStats returns zeroed counters at full confidence, the state
// of a freshly published item.
func NewAttentionStats() AttentionStats {
	return AttentionStats{ConfidenceScore: 1.0}
}

// ContentItem represents a single feed entry (post).
type ContentItem struct {
	ID        string         `json:"id"`
	AuthorID  string         `json:"author_id"`
	Content   string         `json:"content"`
	Media     string         `json:"media,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Attention AttentionStats `json:"attention"`
}

// Validate reports missing required fields. A failure here is an
// integration bug in the caller, not a runtime condition.
func (c ContentItem) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("content item missing id")
	}
	if c.AuthorID == "" {
		return fmt.Errorf("content item %s missing author id", c.ID)
	}
	if c.CreatedAt.IsZero() {
		return fmt.Errorf("content item %s missing created_at", c.ID)
	}
	return nil
}

// Signal is a directed relationship record from a viewer to a target user.
type Signal struct {
	TargetID        string     `json:"target_id"`
	Strength        float64    `json:"strength"`
	LastActiveAt    time.Time  `json:"last_active_at"`
	Type            SignalType `json:"type"`
	ConfidenceScore float64    `json:"confidence_score"`
}

func (s Signal) Validate() error {
	if s.TargetID == "" {
		return fmt.Errorf("signal missing target id")
	}
	return nil
}

// LifetimeAttention accumulates an account's lifetime counters. The era
// fields are derived and recomputed on every mutation.
type LifetimeAttention struct {
	TotalAttentionTime float64 `json:"total_attention_time"` // seconds
	TotalDeepHolds     float64 `json:"total_deep_holds"`
	TotalMutualSignals int     `json:"total_mutual_signals"`
	TotalCapsulesSaved int     `json:"total_capsules_saved"`
	PresenceEra        string  `json:"presence_era"`
	EraColor           string  `json:"era_color"`
}

// Account is one profile in the registry: identity, its outgoing signals,
// and its lifetime counters.
type Account struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Signals  []Signal          `json:"signals"`
	Lifetime LifetimeAttention `json:"lifetime"`
}

func (a Account) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("account missing id")
	}
	for _, s := range a.Signals {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("account %s: %w", a.ID, err)
		}
	}
	return nil
}

// Wave is one labeled, ordered group of ranked items. Waves are ephemeral:
// recomputed from scratch on every ranking pass, never persisted as truth.
type Wave struct {
	Label       string        `json:"label"`
	Description string        `json:"description"`
	Items       []ContentItem `json:"items"`
}

// WithScore decorates a content item with its computed ranking score.
type WithScore struct {
	Item  ContentItem
	Score float64
	Fresh bool
}

// PresenceInsight is an opaque annotation from the hint service. Never
// required for scoring or ranking correctness.
type PresenceInsight struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`      // fatigue | resonance | timing | growth
	Intensity string `json:"intensity"` // soft | deep
}
