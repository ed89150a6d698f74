package ai

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
)

// FallbackService routes answer generation across two providers:
// Gemini first (better grounding quality), falling back to Ollama on quota
// exhaustion, and retrying Gemini if Ollama is unreachable.
type FallbackService struct {
	gemini AnswerService
	ollama AnswerService
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(gemini, ollama AnswerService) *FallbackService {
	return &FallbackService{
		gemini: gemini,
		ollama: ollama,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// GenerateAnswer tries Gemini first, falls back to Ollama
func (f *FallbackService) GenerateAnswer(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if f.gemini != nil {
		result, err := f.gemini.GenerateAnswer(ctx, systemPrompt, userPrompt)
		if err == nil {
			return result, nil
		}

		if isQuotaError(err) {
			log.Printf("[AI] Gemini quota exhausted: %v, falling back to Ollama", err)
		} else {
			log.Printf("[AI] Gemini error: %v, falling back to Ollama", err)
		}
	}

	if f.ollama != nil {
		result, err := f.ollama.GenerateAnswer(ctx, systemPrompt, userPrompt)
		if err == nil {
			return result, nil
		}

		if isConnectionError(err) && f.gemini != nil {
			log.Printf("[AI] Ollama connection failed: %v, retrying Gemini", err)
			return f.gemini.GenerateAnswer(ctx, systemPrompt, userPrompt)
		}

		return "", fmt.Errorf("ollama answer generation failed: %w", err)
	}

	return "", fmt.Errorf("no AI provider available for answer generation")
}
