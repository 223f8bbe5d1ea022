// internal/llm/factory/factory_test.go
package factory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orgpilot/orgpilot/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     string
	}{
		{"default is cloud", "", "huggingface"},
		{"unrecognized is cloud", "something-else", "huggingface"},
		{"explicit huggingface", "huggingface", "huggingface"},
		{"ollama", "ollama", "ollama"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(config.LLMConfig{Provider: tt.provider})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.want)
			}
		})
	}
}

func TestBestAvailable_LocalUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/version" {
			w.Write([]byte(`{"version":"0.5.0"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := config.LLMConfig{Ollama: config.OllamaConfig{Endpoint: srv.URL}}
	p := BestAvailable(context.Background(), cfg)
	if p.Name() != "ollama" {
		t.Errorf("expected local provider when probe answers, got %q", p.Name())
	}
}

func TestBestAvailable_LocalDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cfg := config.LLMConfig{Ollama: config.OllamaConfig{Endpoint: srv.URL}}
	p := BestAvailable(context.Background(), cfg)
	if p.Name() != "huggingface" {
		t.Errorf("expected cloud provider when probe fails, got %q", p.Name())
	}
}

func TestBestAvailable_PinnedWinsOverProbe(t *testing.T) {
	// Explicitly configured provider is honored even when its probe would fail.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cfg := config.LLMConfig{
		Provider: "ollama",
		Ollama:   config.OllamaConfig{Endpoint: srv.URL},
	}
	p := BestAvailable(context.Background(), cfg)
	if p.Name() != "ollama" {
		t.Errorf("pinned provider must not be second-guessed, got %q", p.Name())
	}
}

func TestWithFallback(t *testing.T) {
	cfg := config.LLMConfig{}

	local, err := New(config.LLMConfig{Provider: "ollama"})
	if err != nil {
		t.Fatal(err)
	}
	wrapped := WithFallback(local, cfg)
	if wrapped == local {
		t.Error("non-cloud provider should be wrapped")
	}
	if wrapped.Name() != "ollama" {
		t.Errorf("wrapper must keep the primary name, got %q", wrapped.Name())
	}

	cloud, err := New(config.LLMConfig{Provider: "huggingface"})
	if err != nil {
		t.Fatal(err)
	}
	if got := WithFallback(cloud, cfg); got != cloud {
		t.Error("cloud provider needs no fallback wrapper")
	}
}
