// internal/llm/openaichat/openaichat.go
package openaichat

import (
	"context"
	"fmt"

	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/parse"
	"github.com/sashabaranov/go-openai"
)

// Provider implements the llm interface for OpenAI chat models.
type Provider struct {
	client *openai.Client
	model  string
}

// New creates a new OpenAI provider.
func New(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	client := openai.NewClient(apiKey)
	return &Provider{client: client, model: model}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "openai"
}

// Generate sends the prompt as a single-turn chat completion. JSON response
// format is requested since every caller expects a JSON object back.
func (p *Provider) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	system := opts.SystemPrompt
	if system == "" {
		system = llm.DefaultSystemPrompt
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 800
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.5
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
		TopP:        float32(opts.TopP),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("openai API error: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "{}", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Parse recovers a structured response from the raw text.
func (p *Provider) Parse(raw string) *llm.Response {
	return parse.Parse(raw)
}
