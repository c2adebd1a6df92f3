package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

type conversationService interface {
	Converse(ctx context.Context, in models.ChatInput) (*models.CoachingResponse, error)
}

type ChatHandler struct {
	orchestrator conversationService
}

func NewChatHandler(orchestrator conversationService) *ChatHandler {
	return &ChatHandler{orchestrator: orchestrator}
}

func (h *ChatHandler) Converse(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in, err := models.NewChatInput(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp, err := h.orchestrator.Converse(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
