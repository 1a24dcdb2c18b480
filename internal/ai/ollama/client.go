package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/pkg/aiinterface"
)

const defaultBaseURL = "http://localhost:11434"

// OllamaClient native Ollama API client
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates an Ollama client
func NewClient(config *aiinterface.ClientConfig) (*OllamaClient, error) {
	if config.Model == "" {
		return nil, &aiinterface.ClientError{Type: aiinterface.ErrorTypeInvalidParams, Message: "ollama model is required"}
	}
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OllamaClient{
		baseURL: baseURL,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ChatCompletion POST /api/chat with streaming off
func (c *OllamaClient) ChatCompletion(ctx context.Context, req *aiinterface.ChatCompletionRequest) (*aiinterface.ChatCompletionResponse, error) {
	options := map[string]any{
		"temperature": req.Temperature,
	}
	if req.TopP > 0 {
		options["top_p"] = req.TopP
	}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: req.Messages,
		Stream:   false,
		Options:  options,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var out chatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}

	return &aiinterface.ChatCompletionResponse{
		ID:      "ollama-" + time.Now().Format("20060102150405"),
		Model:   c.model,
		Content: out.Message.Content,
		Usage: aiinterface.Usage{
			PromptTokens:     out.PromptEvalCount,
			CompletionTokens: out.EvalCount,
			TotalTokens:      out.PromptEvalCount + out.EvalCount,
		},
	}, nil
}

// ListModels GET /api/tags
func (c *OllamaClient) ListModels(ctx context.Context) ([]aiinterface.ModelInfo, error) {
	var out tagsResponse
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &out); err != nil {
		return nil, err
	}
	models := make([]aiinterface.ModelInfo, 0, len(out.Models))
	for _, m := range out.Models {
		models = append(models, aiinterface.ModelInfo{Name: m.Name, Size: m.Size, ModifiedAt: m.ModifiedAt})
	}
	return models, nil
}

func (c *OllamaClient) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &aiinterface.ClientError{Type: aiinterface.ErrorTypeNetwork, Message: "ollama request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &aiinterface.ClientError{
			Type:    aiinterface.ErrorTypeForStatus(resp.StatusCode),
			Message: fmt.Sprintf("ollama HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Name provider name
func (c *OllamaClient) Name() string {
	return "ollama"
}

// Close releases idle connections
func (c *OllamaClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

type chatRequest struct {
	Model    string                `json:"model"`
	Messages []aiinterface.Message `json:"messages"`
	Stream   bool                  `json:"stream"`
	Options  map[string]any        `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done            bool `json:"done"`
	PromptEvalCount int  `json:"prompt_eval_count"`
	EvalCount       int  `json:"eval_count"`
}

type tagsResponse struct {
	Models []struct {
		Name       string    `json:"name"`
		Size       int64     `json:"size"`
		ModifiedAt time.Time `json:"modified_at"`
	} `json:"models"`
}
