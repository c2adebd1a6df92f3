package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

// Uploads above this size are rejected before touching the provider.
const maxAudioUploadBytes = 25 << 20

type transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type TranscribeHandler struct {
	transcription transcriber
}

func NewTranscribeHandler(transcription transcriber) *TranscribeHandler {
	return &TranscribeHandler{transcription: transcription}
}

func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUploadBytes))
	if err != nil || len(audio) == 0 {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}

	text, err := h.transcription.Transcribe(r.Context(), audio, header.Filename)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TranscribeResponse{Text: text, Success: true})
}
