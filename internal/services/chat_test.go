package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucylllllz/CALLME-Project/internal/models"
)

func textPrompt(msg string) models.ComposedPrompt {
	return ComposePrompt(msg, nil, nil, nil, false)
}

func TestChatService_Complete(t *testing.T) {
	var captured chatWireRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Great attempt!"}},
			},
		})
	}))
	defer server.Close()

	svc := NewChatService("test-key", server.URL, "gpt-5-nano", 5*time.Second)
	reply, err := svc.Complete(context.Background(), textPrompt("I go to school yesterday"))
	require.NoError(t, err)
	assert.Equal(t, "Great attempt!", reply)

	assert.Equal(t, "gpt-5-nano", captured.Model)
	assert.Equal(t, chatTemperature, captured.Temperature)
	assert.Equal(t, maxTokensText, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
}

func TestChatService_ImageRaisesTokenBudget(t *testing.T) {
	var captured chatWireRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	image := &models.MediaRef{MIMEType: "image/png", Data: []byte("png")}
	prompt := ComposePrompt("look", nil, nil, image, false)

	svc := NewChatService("test-key", server.URL, "gpt-5-nano", 5*time.Second)
	_, err := svc.Complete(context.Background(), prompt)
	require.NoError(t, err)

	assert.Equal(t, maxTokensImage, captured.MaxTokens)

	// Image travels as an image_url content part on the user message.
	user := captured.Messages[1]
	require.Len(t, user.Content, 2)
	require.NotNil(t, user.Content[1].ImageURL)
	assert.Equal(t, models.PartImage, user.Content[1].Type)
}

func TestChatService_ProviderErrorForwardsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewChatService("test-key", server.URL, "gpt-5-nano", 5*time.Second)
	_, err := svc.Complete(context.Background(), textPrompt("hi"))
	require.Error(t, err)

	pe, ok := AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, pe.StatusCode)
	assert.Contains(t, pe.Body, "overloaded")
}

func TestChatService_EmptyChoicesUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	svc := NewChatService("test-key", server.URL, "gpt-5-nano", 5*time.Second)
	reply, err := svc.Complete(context.Background(), textPrompt("hi"))
	require.NoError(t, err)
	assert.Equal(t, chatFallbackMessage, reply)
}

func TestChatService_MissingAPIKey(t *testing.T) {
	svc := NewChatService("", "http://unused", "gpt-5-nano", 5*time.Second)
	_, err := svc.Complete(context.Background(), textPrompt("hi"))
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
