package embed

import "context"

// Embedder maps text to fixed-dimension vectors. Implementations must be
// order-preserving (one vector per input, same order) and must embed
// documents and queries through the same invocation path so distances in
// the resulting space stay comparable.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
