package ai

import "context"

// AnswerService is the interface for grounded answer generation.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type AnswerService interface {
	// GenerateAnswer produces free text from a system instruction and a user
	// prompt carrying the retrieved context plus the question.
	GenerateAnswer(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)

// GenerationParams bound the model output. Answers must stay traceable to the
// retrieved email context, so temperature is near zero and length is capped.
type GenerationParams struct {
	Temperature float64
	MaxTokens   int
}

// DefaultGenerationParams returns the parameters used when none are configured.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature: 0.2,
		MaxTokens:   256,
	}
}
