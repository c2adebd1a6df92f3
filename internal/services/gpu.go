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

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

// GPUClient talks to the GPU-backed enrichment provider. Both calls are
// single synchronous requests with no retries; every failure is normalized
// to a ProviderError at this boundary so the caller can decide whether the
// enrichment was optional.
type GPUClient struct {
	baseURL string
	client  *http.Client
}

func NewGPUClient(baseURL string, timeout time.Duration) *GPUClient {
	return &GPUClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ScoreFluency uploads the audio and returns the provider's metric map.
func (c *GPUClient) ScoreFluency(ctx context.Context, audio models.MediaRef) (models.FluencyResult, error) {
	body, err := c.postFile(ctx, "/fluency", "audio", audio)
	if err != nil {
		return nil, err
	}

	var result models.FluencyResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("fluency: parse response: %w", err)
	}
	return result, nil
}

// ConvertSketch uploads the sketch image and returns the provider's result.
func (c *GPUClient) ConvertSketch(ctx context.Context, image models.MediaRef) (models.SketchInterpretation, error) {
	body, err := c.postFile(ctx, "/sketch2real", "image", image)
	if err != nil {
		return nil, err
	}

	var result models.SketchInterpretation
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("sketch: parse response: %w", err)
	}
	return result, nil
}

func (c *GPUClient) postFile(ctx context.Context, path, field string, ref models.MediaRef) ([]byte, error) {
	if len(ref.Data) == 0 {
		return nil, fmt.Errorf("gpu: empty %s payload", field)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, field+extensionFor(ref.MIMEType))
	if err != nil {
		return nil, fmt.Errorf("gpu: build form: %w", err)
	}
	if _, err := part.Write(ref.Data); err != nil {
		return nil, fmt.Errorf("gpu: build form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("gpu: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("gpu: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: "gpu" + path, StatusCode: http.StatusBadGateway, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Provider: "gpu" + path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/webm":
		return ".webm"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/ogg":
		return ".ogg"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
