package seed

import (
	"fmt"
	"os"
	"time"

	"ambi-feed/internal/attention"
	"ambi-feed/internal/model"
	"ambi-feed/internal/presence"
	"ambi-feed/internal/signal"

	"gopkg.in/yaml.v3"
)

// File is the on-disk fixture format for demo/test data: a small account
// registry plus a content pool. Derived fields (resonance, signal type,
// era) are intentionally absent; they are recomputed on materialization.
type File struct {
	Accounts []Account `yaml:"accounts"`
	Posts    []Post    `yaml:"posts"`
}

type Account struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Signals  []Signal `yaml:"signals"`
	Lifetime Lifetime `yaml:"lifetime"`
}

type Signal struct {
	TargetID     string  `yaml:"target_id"`
	Strength     float64 `yaml:"strength"`
	LastActiveHr float64 `yaml:"last_active_hours_ago"`
}

type Lifetime struct {
	AttentionTime float64 `yaml:"attention_time"`
	DeepHolds     float64 `yaml:"deep_holds"`
	MutualSignals int     `yaml:"mutual_signals"`
	CapsulesSaved int     `yaml:"capsules_saved"`
}

type Post struct {
	ID               string  `yaml:"id"`
	AuthorID         string  `yaml:"author_id"`
	Content          string  `yaml:"content"`
	Media            string  `yaml:"media"`
	AgeHours         float64 `yaml:"age_hours"`
	Glances          int     `yaml:"glances"`
	Holds            int     `yaml:"holds"`
	Returns          int     `yaml:"returns"`
	DeepInteractions int     `yaml:"deep_interactions"`
	Confidence       float64 `yaml:"confidence"`
}

// Load parses and validates a fixture file. Missing required fields fail
// fast: fixtures are authored by hand and errors here are authoring bugs.
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	for i, a := range f.Accounts {
		if a.ID == "" {
			return File{}, fmt.Errorf("seed file %s: account %d missing id", path, i)
		}
		for j, sg := range a.Signals {
			if sg.TargetID == "" {
				return File{}, fmt.Errorf("seed file %s: account %s signal %d missing target_id", path, a.ID, j)
			}
		}
	}
	for i, p := range f.Posts {
		if p.ID == "" || p.AuthorID == "" {
			return File{}, fmt.Errorf("seed file %s: post %d missing id or author_id", path, i)
		}
	}
	return f, nil
}

// Materialize converts fixture records into model values with every
// derived field recomputed, anchored to now.
func (f File) Materialize(now time.Time) ([]model.Account, []model.ContentItem) {
	accounts := make([]model.Account, 0, len(f.Accounts))
	for _, a := range f.Accounts {
		signals := make([]model.Signal, 0, len(a.Signals))
		for _, sg := range a.Signals {
			signals = append(signals, model.Signal{
				TargetID:        sg.TargetID,
				Strength:        sg.Strength,
				LastActiveAt:    now.Add(-time.Duration(sg.LastActiveHr * float64(time.Hour))),
				Type:            signal.TypeFor(sg.Strength),
				ConfidenceScore: 1.0,
			})
		}
		lt := model.LifetimeAttention{
			TotalAttentionTime: a.Lifetime.AttentionTime,
			TotalDeepHolds:     a.Lifetime.DeepHolds,
			TotalMutualSignals: a.Lifetime.MutualSignals,
			TotalCapsulesSaved: a.Lifetime.CapsulesSaved,
		}
		era := presence.Classify(lt)
		lt.PresenceEra = era.Name
		lt.EraColor = era.Color
		accounts = append(accounts, model.Account{
			ID:       a.ID,
			Name:     a.Name,
			Signals:  signals,
			Lifetime: lt,
		})
	}

	posts := make([]model.ContentItem, 0, len(f.Posts))
	for _, p := range f.Posts {
		conf := p.Confidence
		if conf == 0 {
			conf = 1.0
		}
		stats := model.AttentionStats{
			Glances:          p.Glances,
			Holds:            p.Holds,
			Returns:          p.Returns,
			DeepInteractions: p.DeepInteractions,
			ConfidenceScore:  conf,
		}
		stats.ResonanceScore = attention.Resonance(stats)
		posts = append(posts, model.ContentItem{
			ID:        p.ID,
			AuthorID:  p.AuthorID,
			Content:   p.Content,
			Media:     p.Media,
			CreatedAt: now.Add(-time.Duration(p.AgeHours * float64(time.Hour))),
			Attention: stats,
		})
	}
	return accounts, posts
}
