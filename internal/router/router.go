package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lucylllllz/CALLME-Project/internal/handlers"
	"github.com/lucylllllz/CALLME-Project/internal/middleware"
)

// New wires the closed set of routes. Anything outside this enumeration is
// answered with a JSON 404.
func New(
	chatHandler *handlers.ChatHandler,
	transcribeHandler *handlers.TranscribeHandler,
	enrichmentHandler *handlers.EnrichmentHandler,
	historyHandler *handlers.HistoryHandler,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/transcribe", transcribeHandler.Transcribe)
	r.Post("/fluency", enrichmentHandler.ScoreFluency)
	r.Post("/sketch-conversion", enrichmentHandler.ConvertSketch)
	r.Post("/chat", chatHandler.Converse)

	r.Get("/history/{userId}", historyHandler.Get)
	r.Post("/history/{userId}", historyHandler.Append)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Unknown route"}`))
	})

	return r
}
