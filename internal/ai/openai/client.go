package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/pkg/aiinterface"

	openai "github.com/sashabaranov/go-openai"
)

// placeholderKey Ollama's OpenAI-compatible endpoint ignores the key but the
// client always sends one.
const placeholderKey = "ollama"

// Client OpenAI-compatible client (OpenAI itself or Ollama under /v1)
type Client struct {
	client     *openai.Client
	httpClient *http.Client
	modelID    string
}

// NewClient creates an OpenAI-compatible client
func NewClient(config *aiinterface.ClientConfig) (*Client, error) {
	if config.Model == "" {
		return nil, &aiinterface.ClientError{
			Type:    aiinterface.ErrorTypeInvalidParams,
			Message: "model is required",
		}
	}

	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = placeholderKey
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}
	clientConfig.HTTPClient = httpClient

	return &Client{
		client:     openai.NewClientWithConfig(clientConfig),
		httpClient: httpClient,
		modelID:    config.Model,
	}, nil
}

// ChatCompletion non-streaming chat completion, single attempt
func (c *Client) ChatCompletion(ctx context.Context, req *aiinterface.ChatCompletionRequest) (*aiinterface.ChatCompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.modelID,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
		TopP:        float32(req.TopP),
	})
	if err != nil {
		return nil, wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &aiinterface.ClientError{
			Type:    aiinterface.ErrorTypeServerError,
			Message: "empty choices in completion response",
		}
	}

	return &aiinterface.ChatCompletionResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Content: resp.Choices[0].Message.Content,
		Usage: aiinterface.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// ListModels GET /models
func (c *Client) ListModels(ctx context.Context) ([]aiinterface.ModelInfo, error) {
	list, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	models := make([]aiinterface.ModelInfo, 0, len(list.Models))
	for _, m := range list.Models {
		info := aiinterface.ModelInfo{Name: m.ID}
		if m.CreatedAt > 0 {
			info.ModifiedAt = time.Unix(m.CreatedAt, 0).UTC()
		}
		models = append(models, info)
	}
	return models, nil
}

// Name provider name
func (c *Client) Name() string {
	return "openai"
}

// Close releases idle connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// wrapError classifies go-openai errors by HTTP status
func wrapError(err error) *aiinterface.ClientError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &aiinterface.ClientError{
			Type:    aiinterface.ErrorTypeForStatus(apiErr.HTTPStatusCode),
			Message: fmt.Sprintf("openai API error (HTTP %d)", apiErr.HTTPStatusCode),
			Err:     err,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &aiinterface.ClientError{
			Type:    aiinterface.ErrorTypeForStatus(reqErr.HTTPStatusCode),
			Message: fmt.Sprintf("openai request error (HTTP %d)", reqErr.HTTPStatusCode),
			Err:     err,
		}
	}

	errType := aiinterface.ErrorTypeUnknown
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "connection") {
		errType = aiinterface.ErrorTypeNetwork
	}
	return &aiinterface.ClientError{Type: errType, Message: "openai call failed", Err: err}
}
