package interfaces

import (
	"context"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// LLMService defines the interface for language model operations: embedding
// generation and chat completions. Completions may come from Gemini or Claude
// depending on configuration; embeddings always come from the same model for
// the lifetime of a corpus generation, since vectors from different embedding
// models are not comparable.
type LLMService interface {
	// Embed generates a fixed-dimensionality embedding vector for the given
	// text. The dimensionality is set by configuration and must match the
	// stored corpus.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Chat generates a completion response for the conversation history.
	// The returned string is the model's answer verbatim.
	Chat(ctx context.Context, messages []Message) (string, error)

	// EmbedDimension returns the fixed embedding vector length.
	EmbedDimension() int

	// HealthCheck verifies the service can reach its providers.
	HealthCheck(ctx context.Context) error

	// Close releases provider clients.
	Close() error
}
