// internal/llm/ollama/ollama.go
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/parse"
)

// Provider implements the llm interface for a locally hosted Ollama server.
type Provider struct {
	endpoint string
	model    string
	client   *http.Client
}

// New creates a new Ollama provider.
func New(endpoint, model string) *Provider {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	if model == "" {
		model = "llama2:7b-chat-q4_0"
	}
	return &Provider{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		client: &http.Client{
			Timeout: 5 * time.Minute, // local inference can be slow
		},
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "ollama"
}

// generateRequest is the request to the Ollama generate API.
type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options options `json:"options"`
}

type options struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// formatPrompt wraps the prompt in the delimiter convention of the model
// family, selected by substring match on the model name.
func (p *Provider) formatPrompt(system, prompt string) string {
	switch {
	case strings.Contains(p.model, "llama2"):
		return fmt.Sprintf("<s>[INST] %s [/INST]", prompt)
	case strings.Contains(p.model, "mistral"), strings.Contains(p.model, "phi"):
		return fmt.Sprintf("<|system|>\n%s\n<|user|>\n%s\n<|assistant|>", system, prompt)
	default:
		return fmt.Sprintf("System: %s\nUser: %s\nAssistant:", system, prompt)
	}
}

// Generate sends the formatted prompt to the local generate endpoint.
// A connection failure is surfaced as the distinguished service-unavailable
// error so callers can fall back to another provider.
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
	topK := opts.TopK
	if topK == 0 {
		topK = 40
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	req := generateRequest{
		Model:  p.model,
		Prompt: p.formatPrompt(system, prompt),
		Stream: false,
		Options: options{
			Temperature: temperature,
			TopP:        topP,
			TopK:        topK,
			NumPredict:  maxTokens,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("marshaling request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if isConnectionError(err) {
			return "", core.WrapError(core.ErrProviderUnavailable,
				fmt.Errorf("ollama is not reachable at %s, make sure it is running: %w", p.endpoint, err))
		}
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("ollama API error: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp generateResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error != "" {
			return "", core.WrapError(core.ErrProviderFailed,
				fmt.Errorf("ollama API error: %s", errResp.Error))
		}
		return "", core.WrapError(core.ErrProviderFailed,
			fmt.Errorf("ollama API returned status %d", resp.StatusCode))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", core.WrapError(core.ErrProviderFailed, fmt.Errorf("decoding response: %w", err))
	}

	return genResp.Response, nil
}

// isConnectionError reports whether err means the service is absent rather
// than misbehaving.
func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// Parse recovers a structured response from the raw text.
func (p *Provider) Parse(raw string) *llm.Response {
	return parse.Parse(raw)
}

// Ping probes the version endpoint. A nil return means the local service is
// up and can be preferred over the cloud backend.
func (p *Provider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/api/version", nil)
	if err != nil {
		return core.WrapError(core.ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.WrapError(core.ErrProviderUnavailable,
			fmt.Errorf("version endpoint returned status %d", resp.StatusCode))
	}
	return nil
}
