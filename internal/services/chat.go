package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

const (
	chatTemperature = 0.7

	// Image parts carry far more content for the model to process, so the
	// completion budget doubles when one is attached.
	maxTokensText  = 1024
	maxTokensImage = 2048

	// Returned when the provider replies 2xx but with no usable completion.
	chatFallbackMessage = "Sorry, I couldn't come up with a response this time. Please try again."
)

// ChatService calls an OpenAI-compatible chat-completion endpoint with a
// composed prompt. Provider failures are fatal and carry the upstream status.
type ChatService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewChatService(apiKey, baseURL, model string, timeout time.Duration) *ChatService {
	return &ChatService{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatWireMessage struct {
	Role    string            `json:"role"`
	Content []chatContentPart `json:"content"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatWireRequest struct {
	Model       string            `json:"model"`
	Messages    []chatWireMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
}

type chatWireResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt and returns the first completion's text.
func (s *ChatService) Complete(ctx context.Context, prompt models.ComposedPrompt) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	maxTokens := maxTokensText
	if prompt.HasImage {
		maxTokens = maxTokensImage
	}

	wireReq := chatWireRequest{
		Model:       s.model,
		Messages:    toWireMessages(prompt),
		Temperature: chatTemperature,
		MaxTokens:   maxTokens,
	}

	payload, err := json.Marshal(wireReq)
	if err != nil {
		return "", fmt.Errorf("chat: marshal request: %w", err)
	}

	url := s.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("chat: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: "chat", StatusCode: http.StatusBadGateway, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{Provider: "chat", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed chatWireResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("chat: parse response: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return chatFallbackMessage, nil
	}
	return parsed.Choices[0].Message.Content, nil
}

func toWireMessages(prompt models.ComposedPrompt) []chatWireMessage {
	msgs := make([]chatWireMessage, 0, len(prompt.Messages))
	for _, m := range prompt.Messages {
		wm := chatWireMessage{Role: m.Role}
		for _, p := range m.Parts {
			switch p.Type {
			case models.PartImage:
				wm.Content = append(wm.Content, chatContentPart{
					Type:     models.PartImage,
					ImageURL: &chatImageURL{URL: p.ImageURI},
				})
			default:
				wm.Content = append(wm.Content, chatContentPart{
					Type: models.PartText,
					Text: p.Text,
				})
			}
		}
		msgs = append(msgs, wm)
	}
	return msgs
}
