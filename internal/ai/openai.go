package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ambi-feed/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// FallbackHint is used whenever the generative service is absent or fails.
// Hints are opaque annotations; their absence must never block ranking.
const FallbackHint = "surfaced via temporal resonance."

// FallbackInsights is the static substitute for generated presence insights.
var FallbackInsights = []model.PresenceInsight{
	{
		ID:        "fallback",
		Title:     "Steady Drift",
		Message:   "Your signals are moving at a natural pace through the collective.",
		Type:      "resonance",
		Intensity: "soft",
	},
}

// Hinter generates human-readable copy for ranked items and creator
// analytics. Implementations must treat failures as recoverable; callers
// always have a static fallback.
type Hinter interface {
	// RelevanceHint writes a short lowercase sentence explaining why an
	// item surfaced, given the local heuristic reason.
	RelevanceHint(ctx context.Context, item model.ContentItem, reason string) (string, error)
	// PresenceInsights turns redacted attention patterns into a handful of
	// qualitative insights.
	PresenceInsights(ctx context.Context, items []model.ContentItem) ([]model.PresenceInsight, error)
}

// OpenAIClient implements Hinter using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
	cache  *Cache
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config, cache *Cache) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		panic("OpenAI model must be specified")
	}
	return &OpenAIClient{client: c, model: model, cache: cache}
}

func (o *OpenAIClient) RelevanceHint(ctx context.Context, item model.ContentItem, reason string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	key := fmt.Sprintf("hint:%s:%s", item.ID, reason)
	if v, ok := o.cache.Get(key); ok {
		return v, nil
	}

	sys := "Short poetic lowercase sentence explaining why a post surfaced in a feed. Under 6 words. No metrics, no numbers."
	user := fmt.Sprintf("Heuristic reason: %s", reason)
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: relevance hint error", "item", item.ID, "err", err)
		return "", err
	}
	out = strings.ToLower(strings.TrimSpace(out))
	o.cache.Set(key, out)
	return out, nil
}

func (o *OpenAIClient) PresenceInsights(ctx context.Context, items []model.ContentItem) ([]model.PresenceInsight, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	if len(items) == 0 {
		return nil, nil
	}

	sys := `Analyze resonance patterns for a creator. Do not mention users or numbers.
		Return a JSON array of 3 objects with fields: title, message,
		type (fatigue|resonance|timing|growth), intensity (soft|deep).`
	user := "Signal patterns:\n" + redact(items)
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: presence insights error", "err", err)
		return nil, err
	}
	var insights []model.PresenceInsight
	if err := json.Unmarshal([]byte(out), &insights); err != nil {
		return nil, fmt.Errorf("parse insights: %w", err)
	}
	for i := range insights {
		insights[i].ID = fmt.Sprintf("insight-%d", i)
	}
	return insights, nil
}

// redact turns items into an anonymized pattern sketch so content never
// leaves the process.
func redact(items []model.ContentItem) string {
	b := &strings.Builder{}
	for i, it := range items {
		if i >= 5 {
			break
		}
		kind := "Text Signal"
		if it.Media != "" {
			kind = "Visual Artifact"
		}
		g := it.Attention.Glances
		if g < 1 {
			g = 1
		}
		fmt.Fprintf(b, "[Sig: %s | HoldRatio: %.2f | Returns: %d | DeepInt: %d]\n",
			kind, float64(it.Attention.Holds)/float64(g), it.Attention.Returns, it.Attention.DeepInteractions)
	}
	return b.String()
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// HintOrFallback resolves a hint through h, falling back to the static
// string when h is nil or errors.
func HintOrFallback(ctx context.Context, h Hinter, item model.ContentItem, reason string) string {
	if h == nil {
		return FallbackHint
	}
	out, err := h.RelevanceHint(ctx, item, reason)
	if err != nil || strings.TrimSpace(out) == "" {
		return FallbackHint
	}
	return out
}

// InsightsOrFallback resolves presence insights through h, substituting
// the static set when h is nil or errors.
func InsightsOrFallback(ctx context.Context, h Hinter, items []model.ContentItem) []model.PresenceInsight {
	if h == nil {
		return FallbackInsights
	}
	out, err := h.PresenceInsights(ctx, items)
	if err != nil || len(out) == 0 {
		return FallbackInsights
	}
	return out
}
