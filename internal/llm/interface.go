package llm

import (
	"context"

	"github.com/orgpilot/orgpilot/internal/core"
)

// Provider defines the interface for text-generation backends. Generate
// returns the raw model text; Parse recovers the structured response from
// it. Parse is total: it never fails, degrading to a fixed fallback object
// instead.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	Parse(raw string) *Response
}

// Options holds generation parameters. Zero values fall back to
// provider-specific defaults.
type Options struct {
	Temperature  float64 // sampling randomness, default ~0.5
	TopP         float64 // nucleus-sampling threshold, default ~0.9
	TopK         int     // default 40 where supported
	MaxTokens    int     // generation length cap, default 800
	SystemPrompt string  // overrides the provider's default system prompt
}

// DefaultSystemPrompt steers models toward bare-JSON answers.
const DefaultSystemPrompt = "You are a helpful AI assistant that ONLY responds with valid JSON objects. " +
	"Never include explanations, markdown, or code blocks in your responses."

// ExtractedField is one piece of structured data recovered from a user turn.
type ExtractedField struct {
	DataType core.DataType `json:"dataType"`
	Value    any           `json:"value"`
}

// Question is the next field to ask the user about.
type Question struct {
	DataType core.DataType `json:"dataType"`
	Question string        `json:"question"`
}

// Response is the structured result of one generation turn. The JSON field
// names are a wire contract consumed by downstream layers.
type Response struct {
	ExtractedData *ExtractedField `json:"extractedData"`
	NextQuestion  *Question       `json:"nextQuestion"`
	Reply         string          `json:"conversationalResponse"`
}

// GetResponse generates and parses in one step.
func GetResponse(ctx context.Context, p Provider, prompt string, opts Options) (*Response, error) {
	raw, err := p.Generate(ctx, prompt, opts)
	if err != nil {
		return nil, err
	}
	return p.Parse(raw), nil
}
