package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harshitjoshi133/DeepShiva/pkg/aiinterface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClient_ChatCompletion(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Namaste!"},"done":true,"prompt_eval_count":12,"eval_count":3}`))
	}))
	defer srv.Close()

	c, err := NewClient(&aiinterface.ClientConfig{BaseURL: srv.URL + "/", Model: "gemma3:1b"})
	require.NoError(t, err)

	resp, err := c.ChatCompletion(context.Background(), &aiinterface.ChatCompletionRequest{
		Messages:    []aiinterface.Message{{Role: aiinterface.RoleUser, Content: "hello"}},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Namaste!", resp.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
	assert.Equal(t, "gemma3:1b", got.Model)
	assert.False(t, got.Stream)
	assert.EqualValues(t, 1000, got.Options["num_predict"])
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestOllamaClient_HTTPErrorIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := NewClient(&aiinterface.ClientConfig{BaseURL: srv.URL, Model: "missing"})
	require.NoError(t, err)

	_, err = c.ChatCompletion(context.Background(), &aiinterface.ChatCompletionRequest{})
	var ce *aiinterface.ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, aiinterface.ErrorTypeInvalidParams, ce.Type)
	assert.Contains(t, ce.Error(), "model not found")
}

func TestOllamaClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"gemma3:1b","size":815319791,"modified_at":"2025-01-02T03:04:05Z"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(&aiinterface.ClientConfig{BaseURL: srv.URL, Model: "gemma3:1b"})
	require.NoError(t, err)

	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "gemma3:1b", models[0].Name)
	assert.Equal(t, int64(815319791), models[0].Size)
}

func TestNewClient_RequiresModel(t *testing.T) {
	_, err := NewClient(&aiinterface.ClientConfig{})
	assert.Error(t, err)
}
