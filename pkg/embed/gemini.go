package embed

import (
	"context"
	"fmt"
	"os"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/amikos-tech/chroma-go/pkg/embeddings/gemini"
)

// GeminiEmbedder implements Embedder using the Gemini text embedding API.
type GeminiEmbedder struct {
	embedFunc *gemini.GeminiEmbeddingFunction
}

// NewGeminiEmbedder creates a Gemini-backed embedder.
func NewGeminiEmbedder(apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if model == "" {
		model = "text-embedding-004"
	}

	// The embedding function reads the key from the environment
	os.Setenv("GEMINI_API_KEY", apiKey)

	embedFunc, err := gemini.NewGeminiEmbeddingFunction(
		gemini.WithEnvAPIKey(),
		gemini.WithDefaultModel(embeddings.EmbeddingModel(model)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini embedding function: %w", err)
	}

	return &GeminiEmbedder{embedFunc: embedFunc}, nil
}

// EmbedDocuments embeds a batch of documents, preserving order.
func (g *GeminiEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	embs, err := g.embedFunc.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("gemini embed documents: %w", err)
	}
	if len(embs) != len(texts) {
		return nil, fmt.Errorf("gemini embed documents: got %d vectors for %d texts", len(embs), len(texts))
	}
	vectors := make([][]float32, len(embs))
	for i, e := range embs {
		vectors[i] = e.ContentAsFloat32()
	}
	return vectors, nil
}

// EmbedQuery embeds a single query string.
func (g *GeminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	emb, err := g.embedFunc.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("gemini embed query: %w", err)
	}
	return emb.ContentAsFloat32(), nil
}
