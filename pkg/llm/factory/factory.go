package factory

import (
	"ats-scheduler-be/pkg/llm"
	"ats-scheduler-be/pkg/llm/ollama"
	"ats-scheduler-be/pkg/llm/openrouter"
	"fmt"
)

type ProviderConfig struct {
	Provider string // "openrouter" or "ollama"
	Model    string

	// OpenRouter
	APIKey   string
	BaseURL  string
	Referer  string
	AppTitle string

	// Ollama
	OllamaBaseURL string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openrouter":
		return openrouter.NewOpenRouterProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Referer, cfg.AppTitle), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
