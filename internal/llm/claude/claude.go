// internal/llm/claude/claude.go
package claude

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/parse"
)

// Provider implements the llm interface for Claude/Anthropic.
type Provider struct {
	client anthropic.Client
	model  string
}

// New creates a new Claude provider.
func New(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required")
	}
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Provider{client: client, model: model}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "claude"
}

// Generate sends the prompt as a single-turn messages request.
func (p *Provider) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	system := opts.SystemPrompt
	if system == "" {
		system = llm.DefaultSystemPrompt
	}

	maxTokens := int64(opts.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 800
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("claude API error: %w", err))
	}

	if len(resp.Content) == 0 || resp.Content[0].Type != "text" {
		return "{}", nil
	}
	return resp.Content[0].Text, nil
}

// Parse recovers a structured response from the raw text.
func (p *Provider) Parse(raw string) *llm.Response {
	return parse.Parse(raw)
}
