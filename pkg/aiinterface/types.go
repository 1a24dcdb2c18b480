package aiinterface

import (
	"context"
	"time"
)

// Roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message one chat turn
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatCompletionRequest chat completion request
type ChatCompletionRequest struct {
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"` // 0-2
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
}

// ChatCompletionResponse chat completion response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
}

// Usage token accounting
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ModelInfo a model served by the provider
type ModelInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
}

// ModelClient provider-neutral LLM client
type ModelClient interface {
	// ChatCompletion non-streaming completion
	ChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)

	// ListModels models available on the provider
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// Name provider name ("ollama", "openai")
	Name() string

	// Close releases idle connections
	Close() error
}

// ClientConfig client settings
type ClientConfig struct {
	Provider string // ollama, openai
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  int // seconds
}

// ErrorType error category
type ErrorType string

const (
	ErrorTypeAuth          ErrorType = "auth"
	ErrorTypeRateLimit     ErrorType = "rate_limit"
	ErrorTypeInvalidParams ErrorType = "invalid_params"
	ErrorTypeServerError   ErrorType = "server_error"
	ErrorTypeNetwork       ErrorType = "network"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// ClientError provider error with a category
type ClientError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error
func (e *ClientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the cause
func (e *ClientError) Unwrap() error {
	return e.Err
}

// ErrorTypeForStatus maps an HTTP status to an error category
func ErrorTypeForStatus(status int) ErrorType {
	switch {
	case status == 401 || status == 403:
		return ErrorTypeAuth
	case status == 429:
		return ErrorTypeRateLimit
	case status >= 400 && status < 500:
		return ErrorTypeInvalidParams
	case status >= 500:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}
