// internal/api/handler/api/chat.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/orgpilot/orgpilot/internal/api/middleware"
	"github.com/orgpilot/orgpilot/internal/api/response"
	"github.com/orgpilot/orgpilot/internal/collect"
	"github.com/orgpilot/orgpilot/internal/core"
)

// ChatHandler handles conversational data-collection requests.
type ChatHandler struct {
	svc *collect.Service
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *collect.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type chatRequest struct {
	Message         string        `json:"message"`
	SessionID       string        `json:"sessionId"`
	CurrentQuestion core.DataType `json:"currentQuestion"`
}

// Turn processes one conversation turn.
func (h *ChatHandler) Turn(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrValidationFailed, err))
		return
	}
	if req.Message == "" {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrValidationFailed, nil))
		return
	}

	userID := middleware.UserID(r.Context())
	result, err := h.svc.Turn(r.Context(), userID, req.SessionID, req.Message, req.CurrentQuestion)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
