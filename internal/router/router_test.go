package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucylllllz/CALLME-Project/internal/handlers"
	"github.com/lucylllllz/CALLME-Project/internal/models"
	"github.com/lucylllllz/CALLME-Project/internal/repository"
	"github.com/lucylllllz/CALLME-Project/internal/services"
)

type noopFluency struct{}

func (noopFluency) ScoreFluency(ctx context.Context, audio models.MediaRef) (models.FluencyResult, error) {
	return nil, nil
}

type noopSketch struct{}

func (noopSketch) ConvertSketch(ctx context.Context, image models.MediaRef) (models.SketchInterpretation, error) {
	return nil, nil
}

type noopChat struct{}

func (noopChat) Complete(ctx context.Context, prompt models.ComposedPrompt) (string, error) {
	return "ok", nil
}

type noopTranscriber struct{}

func (noopTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	return "", nil
}

func testRouter() http.Handler {
	orchestrator := services.NewOrchestrator(noopFluency{}, noopSketch{}, noopChat{})
	return New(
		handlers.NewChatHandler(orchestrator),
		handlers.NewTranscribeHandler(noopTranscriber{}),
		handlers.NewEnrichmentHandler(noopFluency{}, noopSketch{}),
		handlers.NewHistoryHandler(repository.NewMemoryHistoryRepo(100)),
	)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Health body is not JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeadersOnEveryRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected open CORS, got %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestPreflightShortCircuits(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204 for preflight, got %d", rr.Code)
	}
}

func TestUnknownRouteIsJSONError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	testRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("404 body is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error("Expected non-empty error field")
	}
}
