// internal/llm/huggingface/huggingface.go
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/parse"
)

const defaultEndpoint = "https://api-inference.huggingface.co/models"

// Provider implements the llm interface against the Hugging Face
// serverless inference API.
type Provider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// New creates a new Hugging Face provider.
func New(apiKey, model, endpoint string) *Provider {
	if model == "" {
		model = "meta-llama/Llama-3.1-8B-Instruct"
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Provider{
		apiKey:   apiKey,
		model:    model,
		endpoint: strings.TrimRight(endpoint, "/"),
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "huggingface"
}

// generateRequest is the inference API request body.
type generateRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
	DoSample       bool    `json:"do_sample"`
	TopP           float64 `json:"top_p"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

// Generate sends the prompt wrapped in the model's turn-delimiter template
// and returns the raw generated text.
func (p *Provider) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	system := opts.SystemPrompt
	if system == "" {
		system = llm.DefaultSystemPrompt
	}

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.5
	}
	topP := opts.TopP
	if topP == 0 {
		topP = 0.9
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 800
	}

	req := generateRequest{
		Inputs: fmt.Sprintf("<|system|>\n%s\n<|user|>\n%s\n<|assistant|>", system, prompt),
		Parameters: parameters{
			MaxNewTokens:   maxTokens,
			Temperature:    temperature,
			ReturnFullText: false,
			DoSample:       true,
			TopP:           topP,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("marshaling request: %w", err))
	}

	url := p.endpoint + "/" + p.model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("huggingface API error: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("reading response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return "", core.WrapError(core.ErrProviderFailed,
			fmt.Errorf("huggingface API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	return extractText(respBody), nil
}

// extractText pulls generated text out of the three response shapes the
// inference API produces: an array of generations, a single generation
// object, or a bare string. Falls back to "{}" when no text is present.
func extractText(body []byte) string {
	var gens []generation
	if err := json.Unmarshal(body, &gens); err == nil {
		if len(gens) > 0 && strings.TrimSpace(gens[0].GeneratedText) != "" {
			return strings.TrimSpace(gens[0].GeneratedText)
		}
		return "{}"
	}

	var gen generation
	if err := json.Unmarshal(body, &gen); err == nil && gen.GeneratedText != "" {
		return strings.TrimSpace(gen.GeneratedText)
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return strings.TrimSpace(s)
	}

	return "{}"
}

// Parse recovers a structured response from the raw text.
func (p *Provider) Parse(raw string) *llm.Response {
	return parse.Parse(raw)
}

// Status probes the inference API and classifies the result the way the UI
// expects: "available", "limited" (rate limit or payment required),
// "unavailable" (no or bad key), or "error".
func (p *Provider) Status(ctx context.Context) (string, string) {
	if p.apiKey == "" {
		return "unavailable", "no API key configured"
	}

	body, _ := json.Marshal(map[string]string{"inputs": "Hello"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/"+p.model, bytes.NewReader(body))
	if err != nil {
		return "error", err.Error()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "error", err.Error()
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return "available", "API key is valid"
	case http.StatusTooManyRequests:
		return "limited", "rate limited"
	case http.StatusPaymentRequired:
		return "limited", "payment required"
	case http.StatusUnauthorized:
		return "unavailable", "invalid API key"
	default:
		return "error", fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
}
