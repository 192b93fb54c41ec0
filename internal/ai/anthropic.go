package ai

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/talentsift/scout-cli/pkg/anthropic"
)

const defaultAnthropicModel = "claude-haiku-4-5-20251001"

// anthropicMaxTokens caps completion length when the caller does not set one.
// The Anthropic API requires an explicit max_tokens on every request.
const anthropicMaxTokens = 4096

type anthropicChatter struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

func newAnthropicChatter(opts Options, model string) *anthropicChatter {
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicMaxTokens
	}
	return &anthropicChatter{
		client:      anthropic.NewClient(opts.APIKey),
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   maxTokens,
	}
}

func (a *anthropicChatter) ChatJSON(ctx context.Context, system, user string) (string, Usage, error) {
	temp := a.temperature
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   int64(a.maxTokens),
		System:      system,
		Messages:    []anthropic.Message{{Role: "user", Content: user}},
		Temperature: &temp,
	})
	if err != nil {
		return "", Usage{}, eris.Wrap(err, "ai: anthropic message")
	}

	resp.Usage.LogCost(a.model, "scoring")
	usage := Usage{
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(block.Text)
	}
	if sb.Len() == 0 {
		return "", usage, eris.New("ai: anthropic returned no text content")
	}
	return sb.String(), usage, nil
}
