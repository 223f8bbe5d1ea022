// internal/llm/factory/factory.go
package factory

import (
	"context"
	"time"

	"github.com/orgpilot/orgpilot/internal/config"
	"github.com/orgpilot/orgpilot/internal/llm"
	"github.com/orgpilot/orgpilot/internal/llm/claude"
	"github.com/orgpilot/orgpilot/internal/llm/huggingface"
	"github.com/orgpilot/orgpilot/internal/llm/ollama"
	"github.com/orgpilot/orgpilot/internal/llm/openaichat"
)

// probeTimeout bounds the local liveness probe; absence of the local service
// is an expected condition, not something worth waiting on.
const probeTimeout = 2 * time.Second

// New creates a provider based on configuration. The cloud provider is the
// default for an empty or unrecognized name.
func New(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.New(cfg.Ollama.Endpoint, cfg.Ollama.Model), nil
	case "openai":
		return openaichat.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "claude":
		return claude.New(cfg.Claude.APIKey, cfg.Claude.Model)
	default:
		return huggingface.New(cfg.HuggingFace.APIKey, cfg.HuggingFace.Model, cfg.HuggingFace.Endpoint), nil
	}
}

// BestAvailable returns the provider to use when none is pinned: the local
// Ollama server when its liveness probe answers, the cloud provider
// otherwise. An explicitly configured provider is returned unconditionally;
// explicit choice is never second-guessed. Probe failure is not an error.
func BestAvailable(ctx context.Context, cfg config.LLMConfig) llm.Provider {
	if cfg.Provider != "" {
		if p, err := New(cfg); err == nil {
			return p
		}
		// A pinned provider that cannot be constructed (missing API key)
		// still degrades to the cloud default rather than failing the caller.
		return huggingface.New(cfg.HuggingFace.APIKey, cfg.HuggingFace.Model, cfg.HuggingFace.Endpoint)
	}

	local := ollama.New(cfg.Ollama.Endpoint, cfg.Ollama.Model)

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := local.Ping(probeCtx); err == nil {
		return local
	}

	return huggingface.New(cfg.HuggingFace.APIKey, cfg.HuggingFace.Model, cfg.HuggingFace.Endpoint)
}

// WithFallback wraps the selected provider so a failing non-cloud provider is
// retried once against the cloud backend before the caller degrades to the
// parser's fallback object.
func WithFallback(p llm.Provider, cfg config.LLMConfig) llm.Provider {
	if p.Name() == "huggingface" {
		return p
	}
	cloud := huggingface.New(cfg.HuggingFace.APIKey, cfg.HuggingFace.Model, cfg.HuggingFace.Endpoint)
	return llm.NewFailover(p, cloud)
}
