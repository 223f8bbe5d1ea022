// internal/api/handler/api/providers_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeCloud struct {
	status  string
	message string
}

func (f *fakeCloud) Name() string                                { return "huggingface" }
func (f *fakeCloud) Status(ctx context.Context) (string, string) { return f.status, f.message }

type fakeLocal struct {
	err error
}

func (f *fakeLocal) Name() string                   { return "ollama" }
func (f *fakeLocal) Ping(ctx context.Context) error { return f.err }

func TestProvidersHandler_Status(t *testing.T) {
	h := NewProvidersHandler(
		&fakeCloud{status: "limited", message: "rate limited"},
		&fakeLocal{err: errors.New("connection refused")},
		"huggingface",
	)

	req := httptest.NewRequest("GET", "/api/v1/providers/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Active    string `json:"active"`
			Providers []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			} `json:"providers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	if resp.Data.Active != "huggingface" {
		t.Errorf("active = %q", resp.Data.Active)
	}
	if len(resp.Data.Providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(resp.Data.Providers))
	}
	if resp.Data.Providers[0].Status != "limited" {
		t.Errorf("cloud status = %q", resp.Data.Providers[0].Status)
	}
	if resp.Data.Providers[1].Status != "unavailable" {
		t.Errorf("local status = %q", resp.Data.Providers[1].Status)
	}
}

func TestProvidersHandler_NilProbers(t *testing.T) {
	h := NewProvidersHandler(nil, nil, "")

	req := httptest.NewRequest("GET", "/api/v1/providers/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
