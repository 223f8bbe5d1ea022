// internal/api/handler/api/extract.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/orgpilot/orgpilot/internal/api/middleware"
	"github.com/orgpilot/orgpilot/internal/api/response"
	"github.com/orgpilot/orgpilot/internal/collect"
	"github.com/orgpilot/orgpilot/internal/core"
)

// ExtractHandler handles structured extraction requests.
type ExtractHandler struct {
	svc *collect.Service
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(svc *collect.Service) *ExtractHandler {
	return &ExtractHandler{svc: svc}
}

type extractRequest struct {
	DataType     core.DataType `json:"dataType"`
	UserResponse string        `json:"userResponse"`
}

// Extract runs the extraction pipeline for one data type.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrValidationFailed, err))
		return
	}
	if req.DataType == "" || req.UserResponse == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrValidationFailed, nil))
		return
	}

	userID := middleware.UserID(r.Context())
	value, err := h.svc.Extract(r.Context(), userID, req.DataType, req.UserResponse)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"dataType": req.DataType,
		"value":    value,
	})
}
