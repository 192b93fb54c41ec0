// Package ai routes candidate analysis through a configurable LLM provider
// and turns model replies into classification and job-match results.
package ai

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
)

// Usage counts tokens consumed across provider calls.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Add accumulates another usage sample.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
}

// Total returns the combined token count.
func (u Usage) Total() int {
	return u.PromptTokens + u.CompletionTokens
}

// Chatter performs one chat completion whose reply is expected to be a
// single JSON object.
type Chatter interface {
	ChatJSON(ctx context.Context, system, user string) (string, Usage, error)
}

// Options selects and configures the LLM provider.
type Options struct {
	// Provider is "groq", "anthropic", or "gemini". The combined form
	// "provider/model" (e.g. "groq/deepseek-r1-distill-llama-70b") is
	// accepted and its model part wins over Model.
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// New builds the Chatter for the configured provider.
func New(ctx context.Context, opts Options) (Chatter, error) {
	provider, model := splitProvider(opts.Provider)
	if model == "" {
		model = opts.Model
	}

	switch provider {
	case "", "groq":
		return newGroqChatter(opts, model), nil
	case "anthropic":
		return newAnthropicChatter(opts, model), nil
	case "gemini":
		return newGeminiChatter(ctx, opts, model)
	default:
		return nil, eris.Errorf("ai: unknown provider %q", provider)
	}
}

// splitProvider parses a combined "provider/model" identifier. The model
// part may itself contain slashes.
func splitProvider(s string) (provider, model string) {
	provider = strings.TrimSpace(s)
	if i := strings.Index(provider, "/"); i >= 0 {
		return provider[:i], provider[i+1:]
	}
	return provider, ""
}
