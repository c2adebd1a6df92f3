package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lucylllllz/CALLME-Project/internal/models"
	"github.com/lucylllllz/CALLME-Project/internal/services"
)

// EnrichmentHandler exposes the fluency and sketch-conversion providers as
// standalone routes. Unlike the chat flow, provider failures here are
// returned to the caller with the upstream status.
type EnrichmentHandler struct {
	fluency services.FluencyScorer
	sketch  services.SketchConverter
}

func NewEnrichmentHandler(fluency services.FluencyScorer, sketch services.SketchConverter) *EnrichmentHandler {
	return &EnrichmentHandler{fluency: fluency, sketch: sketch}
}

func (h *EnrichmentHandler) ScoreFluency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AudioDataURI string `json:"audioDataUri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AudioDataURI == "" {
		writeError(w, http.StatusBadRequest, "No audio data provided")
		return
	}

	audio, err := models.ParseDataURI(req.AudioDataURI)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid audioDataUri: "+err.Error())
		return
	}

	result, err := h.fluency.ScoreFluency(r.Context(), audio)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.FluencyResponse{Fluency: result, Success: true})
}

func (h *EnrichmentHandler) ConvertSketch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageDataURI string `json:"imageDataUri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ImageDataURI == "" {
		writeError(w, http.StatusBadRequest, "No image data provided")
		return
	}

	image, err := models.ParseDataURI(req.ImageDataURI)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid imageDataUri: "+err.Error())
		return
	}

	result, err := h.sketch.ConvertSketch(r.Context(), image)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SketchResponse{Result: result, Success: true})
}
