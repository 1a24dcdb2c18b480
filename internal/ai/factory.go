package ai

import (
	"fmt"
	"strings"

	"github.com/Harshitjoshi133/DeepShiva/internal/ai/ollama"
	"github.com/Harshitjoshi133/DeepShiva/internal/ai/openai"
	"github.com/Harshitjoshi133/DeepShiva/internal/config"
	"github.com/Harshitjoshi133/DeepShiva/pkg/aiinterface"
)

// Providers
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// NewModelClient builds the provider client named by cfg.Provider
func NewModelClient(cfg config.AIConfig) (aiinterface.ModelClient, error) {
	clientCfg := &aiinterface.ClientConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Timeout:  int(cfg.TimeoutDuration().Seconds()),
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderOllama, "":
		clientCfg.BaseURL = cfg.Host
		return ollama.NewClient(clientCfg)
	case ProviderOpenAI:
		// OpenAI-compatible servers (Ollama included) expose the API under /v1
		if cfg.Host != "" {
			clientCfg.BaseURL = strings.TrimRight(cfg.Host, "/") + "/v1"
		}
		return openai.NewClient(clientCfg)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
