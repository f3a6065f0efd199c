package embeddings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
)

type stubLLM struct {
	embedFunc   func(ctx context.Context, text string) ([]float64, error)
	dimension   int
	healthError error
}

func (s *stubLLM) Embed(ctx context.Context, text string) ([]float64, error) {
	return s.embedFunc(ctx, text)
}

func (s *stubLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubLLM) EmbedDimension() int { return s.dimension }

func (s *stubLLM) HealthCheck(ctx context.Context) error { return s.healthError }

func (s *stubLLM) Close() error { return nil }

func TestGenerateEmbedding(t *testing.T) {
	llm := &stubLLM{
		dimension: 3,
		embedFunc: func(ctx context.Context, text string) ([]float64, error) {
			return []float64{0.1, 0.2, 0.3}, nil
		},
	}
	service := NewService(llm, arbor.NewLogger())

	embedding, err := service.GenerateEmbedding(context.Background(), "some course text")
	require.NoError(t, err)
	assert.Len(t, embedding, 3)
	assert.Equal(t, 3, service.Dimension())
}

func TestGenerateEmbedding_EmptyText(t *testing.T) {
	llm := &stubLLM{dimension: 3}
	service := NewService(llm, arbor.NewLogger())

	_, err := service.GenerateEmbedding(context.Background(), "")
	assert.Error(t, err)
}

func TestGenerateEmbedding_DimensionMismatch(t *testing.T) {
	llm := &stubLLM{
		dimension: 3,
		embedFunc: func(ctx context.Context, text string) ([]float64, error) {
			return []float64{0.1, 0.2}, nil
		},
	}
	service := NewService(llm, arbor.NewLogger())

	_, err := service.GenerateEmbedding(context.Background(), "text")
	assert.ErrorContains(t, err, "dimension mismatch")
}

func TestGenerateQueryEmbedding_SharesModelWithDocuments(t *testing.T) {
	var captured string
	llm := &stubLLM{
		dimension: 2,
		embedFunc: func(ctx context.Context, text string) ([]float64, error) {
			captured = text
			return []float64{1, 0}, nil
		},
	}
	service := NewService(llm, arbor.NewLogger())

	_, err := service.GenerateQueryEmbedding(context.Background(), "what courses exist?")
	require.NoError(t, err)
	assert.Equal(t, "what courses exist?", captured)
}

func TestIsAvailable(t *testing.T) {
	llm := &stubLLM{dimension: 3}
	service := NewService(llm, arbor.NewLogger())
	assert.True(t, service.IsAvailable(context.Background()))

	llm.healthError = errors.New("offline")
	assert.False(t, service.IsAvailable(context.Background()))
}
