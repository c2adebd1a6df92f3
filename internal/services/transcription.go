package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// TranscriptionService forwards audio to an OpenAI-compatible speech-to-text
// endpoint and returns the plain transcript text.
type TranscriptionService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewTranscriptionService(apiKey, baseURL, model string, timeout time.Duration) *TranscriptionService {
	return &TranscriptionService{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Transcribe uploads the audio as a multipart form and returns the text.
func (s *TranscriptionService) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("transcription: empty audio payload")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("model", s.model); err != nil {
		return "", fmt.Errorf("transcription: build form: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("transcription: build form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("transcription: build form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("transcription: build form: %w", err)
	}

	url := s.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("transcription: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: "transcription", StatusCode: http.StatusBadGateway, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{Provider: "transcription", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("transcription: parse response: %w", err)
	}

	return parsed.Text, nil
}
