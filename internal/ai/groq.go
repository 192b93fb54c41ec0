package ai

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/talentsift/scout-cli/pkg/groq"
)

// groqChatter adapts the Groq OpenAI-compatible API. JSON object output is
// enforced through response_format.
type groqChatter struct {
	client      groq.Client
	model       string
	temperature float64
	maxTokens   int
}

func newGroqChatter(opts Options, model string) *groqChatter {
	var clientOpts []groq.Option
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, groq.WithBaseURL(opts.BaseURL))
	}
	return &groqChatter{
		client:      groq.NewClient(opts.APIKey, clientOpts...),
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}
}

func (g *groqChatter) ChatJSON(ctx context.Context, system, user string) (string, Usage, error) {
	temp := g.temperature
	req := groq.ChatCompletionRequest{
		Model: g.model,
		Messages: []groq.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    &temp,
		ResponseFormat: &groq.ResponseFormat{Type: "json_object"},
	}
	if g.maxTokens > 0 {
		mt := g.maxTokens
		req.MaxTokens = &mt
	}

	resp, err := g.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", Usage{}, eris.Wrap(err, "ai: groq chat completion")
	}

	usage := Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	if len(resp.Choices) == 0 {
		return "", usage, eris.New("ai: groq returned no choices")
	}
	return resp.Choices[0].Message.Content, usage, nil
}
