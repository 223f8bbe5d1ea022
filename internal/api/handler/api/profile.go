// internal/api/handler/api/profile.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/orgpilot/orgpilot/internal/api/middleware"
	"github.com/orgpilot/orgpilot/internal/api/response"
	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/extract"
	"github.com/orgpilot/orgpilot/internal/storage/profile"
)

// ProfileHandler serves stored organization and strategy records.
type ProfileHandler struct {
	store profile.Store
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(store profile.Store) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// Organization returns the user's organization profile.
func (h *ProfileHandler) Organization(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	org, err := h.store.Organization(r.Context(), userID)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, org)
}

// Strategy returns the user's business strategy.
func (h *ProfileHandler) Strategy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	strategy, err := h.store.Strategy(r.Context(), userID)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, strategy)
}

type strategySectionRequest struct {
	DataType core.DataType `json:"dataType"`
	Value    any           `json:"value"`
}

// SaveStrategy validates and persists one strategy section.
func (h *ProfileHandler) SaveStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategySectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrValidationFailed, err))
		return
	}
	if req.DataType == "" || req.Value == nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrValidationFailed, nil))
		return
	}

	if err := extract.Validate(req.DataType, req.Value); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	userID := middleware.UserID(r.Context())
	if err := h.store.SaveStrategySection(r.Context(), userID, req.DataType, req.Value); err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"dataType": req.DataType,
		"saved":    true,
	})
}
