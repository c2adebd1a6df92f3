package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lucylllllz/CALLME-Project/internal/models"
	"github.com/lucylllllz/CALLME-Project/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// writeServiceError maps the service error taxonomy onto HTTP responses:
// validation -> 400, provider -> forwarded upstream status, missing
// credential -> 500, anything else -> 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	}

	if pe, ok := services.AsProviderError(err); ok {
		status := pe.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		writeError(w, status, pe.Error())
		return
	}

	if errors.Is(err, services.ErrMissingAPIKey) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, err.Error())
}
