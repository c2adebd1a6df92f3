package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucylllllz/CALLME-Project/internal/models"
	"github.com/lucylllllz/CALLME-Project/internal/repository"
)

const maxHistoryPayloadBytes = 1 << 20

type HistoryHandler struct {
	repo repository.HistoryRepo
}

func NewHistoryHandler(repo repository.HistoryRepo) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	entries, err := h.repo.Get(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{History: entries, Success: true})
}

func (h *HistoryHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxHistoryPayloadBytes))
	if err != nil || len(body) == 0 {
		writeError(w, http.StatusBadRequest, "Request body is required")
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	count, err := h.repo.Append(r.Context(), userID, json.RawMessage(body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to append history")
		return
	}

	writeJSON(w, http.StatusOK, models.HistoryAppendResponse{Success: true, MessageCount: count})
}
