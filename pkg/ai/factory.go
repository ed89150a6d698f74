package ai

import (
	"fmt"

	"mailrag-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"

	Params GenerationParams
}

// NewAnswerService creates an AnswerService based on the config
// This is the factory function - switch AI provider by changing config.Provider
func NewAnswerService(cfg Config) (AnswerService, error) {
	if cfg.Params == (GenerationParams{}) {
		cfg.Params = DefaultGenerationParams()
	}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return gemini.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Params.Temperature, cfg.Params.MaxTokens), nil

	case ProviderOllama:
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Params), nil

	default:
		// Auto: prefer Gemini when a key is available, with Ollama as fallback
		if cfg.GeminiAPIKey != "" {
			g := gemini.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Params.Temperature, cfg.Params.MaxTokens)
			return NewFallbackService(g, NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Params)), nil
		}
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Params), nil
	}
}
