package openai

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

func TestClient_ChatCompletion(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"chatcmpl-1","object":"chat.completion","model":"gemma3:1b",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Kedarnath opens in May."},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":20,"completion_tokens":6,"total_tokens":26}
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(&aiinterface.ClientConfig{BaseURL: srv.URL + "/v1", Model: "gemma3:1b"})
	require.NoError(t, err)

	resp, err := c.ChatCompletion(context.Background(), &aiinterface.ChatCompletionRequest{
		Messages:    []aiinterface.Message{{Role: aiinterface.RoleUser, Content: "When does Kedarnath open?"}},
		Temperature: 0.7,
		MaxTokens:   100,
	})
	require.NoError(t, err)

	assert.Equal(t, "Kedarnath opens in May.", resp.Content)
	assert.Equal(t, 26, resp.Usage.TotalTokens)
	assert.Equal(t, "gemma3:1b", body["model"])
	assert.EqualValues(t, 100, body["max_tokens"])
}

func TestClient_ServerErrorIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"model loading","type":"server_error"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(&aiinterface.ClientConfig{BaseURL: srv.URL + "/v1", Model: "gemma3:1b"})
	require.NoError(t, err)

	_, err = c.ChatCompletion(context.Background(), &aiinterface.ChatCompletionRequest{})
	var ce *aiinterface.ClientError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, aiinterface.ErrorTypeServerError, ce.Type)
}

func TestClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gemma3:1b","object":"model","created":1700000000,"owned_by":"library"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(&aiinterface.ClientConfig{BaseURL: srv.URL + "/v1", Model: "gemma3:1b"})
	require.NoError(t, err)

	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "gemma3:1b", models[0].Name)
	assert.Equal(t, int64(1700000000), models[0].ModifiedAt.Unix())
}
