package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// NewLLMService creates an LLM service based on the configured completion
// provider. Embeddings always come from Gemini since Anthropic does not
// provide an embedding API; when the provider is "claude", completions are
// routed to Claude and embeddings stay on Gemini.
func NewLLMService(config *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	timeout, err := time.ParseDuration(config.LLM.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid llm.timeout %q: %w", config.LLM.Timeout, err)
	}

	gemini, err := NewGeminiService(&config.Gemini, timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini service: %w", err)
	}

	switch config.LLM.Provider {
	case common.LLMProviderGemini:
		return gemini, nil
	case common.LLMProviderClaude:
		claude, err := NewClaudeService(&config.Claude, timeout, logger)
		if err != nil {
			gemini.Close()
			return nil, fmt.Errorf("failed to create Claude service: %w", err)
		}
		return &splitService{embedder: gemini, completer: claude}, nil
	default:
		gemini.Close()
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: gemini, claude)", config.LLM.Provider)
	}
}

// splitService routes embeddings to Gemini and completions to Claude.
type splitService struct {
	embedder  *GeminiService
	completer *ClaudeService
}

func (s *splitService) Embed(ctx context.Context, text string) ([]float64, error) {
	return s.embedder.Embed(ctx, text)
}

func (s *splitService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return s.completer.Chat(ctx, messages)
}

func (s *splitService) EmbedDimension() int {
	return s.embedder.EmbedDimension()
}

func (s *splitService) HealthCheck(ctx context.Context) error {
	if err := s.embedder.HealthCheck(ctx); err != nil {
		return err
	}
	return s.completer.HealthCheck(ctx)
}

func (s *splitService) Close() error {
	err := s.embedder.Close()
	if cerr := s.completer.Close(); err == nil {
		err = cerr
	}
	return err
}
