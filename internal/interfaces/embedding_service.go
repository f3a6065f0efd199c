package interfaces

import (
	"context"
)

// EmbeddingService generates vector embeddings
type EmbeddingService interface {
	// Generate embedding for raw text
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)

	// Generate query embedding (same model and dimensionality as documents)
	GenerateQueryEmbedding(ctx context.Context, query string) ([]float64, error)

	// Get embedding dimension
	Dimension() int

	// Check if service is available
	IsAvailable(ctx context.Context) bool
}
