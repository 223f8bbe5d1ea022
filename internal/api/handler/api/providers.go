// internal/api/handler/api/providers.go
package api

import (
	"context"
	"net/http"

	"github.com/orgpilot/orgpilot/internal/api/response"
)

// CloudProber reports a cloud provider's availability.
type CloudProber interface {
	Name() string
	Status(ctx context.Context) (string, string)
}

// LocalProber checks whether a local runtime is reachable.
type LocalProber interface {
	Name() string
	Ping(ctx context.Context) error
}

// ProvidersHandler reports the availability of configured LLM providers.
type ProvidersHandler struct {
	cloud  CloudProber
	local  LocalProber
	active string
}

// NewProvidersHandler creates a new providers handler. Either prober may be
// nil when the corresponding provider is not configured.
func NewProvidersHandler(cloud CloudProber, local LocalProber, active string) *ProvidersHandler {
	return &ProvidersHandler{cloud: cloud, local: local, active: active}
}

type providerStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Status probes each configured provider and reports the result.
func (h *ProvidersHandler) Status(w http.ResponseWriter, r *http.Request) {
	var providers []providerStatus

	if h.cloud != nil {
		status, message := h.cloud.Status(r.Context())
		providers = append(providers, providerStatus{
			Name:    h.cloud.Name(),
			Status:  status,
			Message: message,
		})
	}

	if h.local != nil {
		ps := providerStatus{Name: h.local.Name(), Status: "available"}
		if err := h.local.Ping(r.Context()); err != nil {
			ps.Status = "unavailable"
			ps.Message = err.Error()
		}
		providers = append(providers, ps)
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"active":    h.active,
		"providers": providers,
	})
}
