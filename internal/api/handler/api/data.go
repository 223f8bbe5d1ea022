// internal/api/handler/api/data.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/orgpilot/orgpilot/internal/api/middleware"
	"github.com/orgpilot/orgpilot/internal/api/response"
	"github.com/orgpilot/orgpilot/internal/collect"
	"github.com/orgpilot/orgpilot/internal/core"
)

// DataHandler handles direct field persistence and progress checks.
type DataHandler struct {
	svc *collect.Service
}

// NewDataHandler creates a new data handler.
func NewDataHandler(svc *collect.Service) *DataHandler {
	return &DataHandler{svc: svc}
}

type saveRequest struct {
	DataType core.DataType `json:"dataType"`
	Value    string        `json:"value"`
}

// Save persists one organization field extracted from a natural-language
// answer.
func (h *DataHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrValidationFailed, err))
		return
	}
	if req.DataType == "" || req.Value == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrValidationFailed, nil))
		return
	}

	userID := middleware.UserID(r.Context())
	value, err := h.svc.SaveField(r.Context(), userID, req.DataType, req.Value)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"dataType": req.DataType,
		"value":    value,
	})
}

// Status reports which fields are collected and which are still missing.
func (h *DataHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	report, err := h.svc.Status(r.Context(), userID)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, report)
}
