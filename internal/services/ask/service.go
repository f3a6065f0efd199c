package ask

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// Service implements AskService. It answers questions by retrieving the
// single most similar indexed document and, when the match clears the
// similarity threshold, injecting it into the completion prompt.
type Service struct {
	embedder  interfaces.EmbeddingService
	llm       interfaces.LLMService
	documents interfaces.DocumentStorage
	threshold float64
	logger    arbor.ILogger
}

// NewService creates a new ask service
func NewService(embedder interfaces.EmbeddingService, llm interfaces.LLMService, documents interfaces.DocumentStorage, threshold float64, logger arbor.ILogger) interfaces.AskService {
	return &Service{
		embedder:  embedder,
		llm:       llm,
		documents: documents,
		threshold: threshold,
		logger:    logger,
	}
}

// Answer embeds the question, scans the indexed corpus for the best cosine
// match, and sends either an augmented or a raw prompt to the completion
// model. Retrieval failure modes (empty corpus, weak match) degrade to the
// raw prompt rather than returning an error.
func (s *Service) Answer(ctx context.Context, question string) (*interfaces.AskResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question cannot be empty: %w", models.ErrInvalidInput)
	}

	start := time.Now()

	queryVector, err := s.embedder.GenerateQueryEmbedding(ctx, question)
	if err != nil {
		return nil, models.NewUpstreamError(models.OpEmbed, err)
	}

	best, bestScore := s.findBestMatch(queryVector)

	prompt := question
	grounded := false
	if best != nil && bestScore > s.threshold {
		prompt = buildAugmentedPrompt(best.Text, question)
		grounded = true
	}

	s.logger.Debug().
		Bool("grounded", grounded).
		Float64("best_score", bestScore).
		Float64("threshold", s.threshold).
		Msg("Retrieval complete")

	messages := []interfaces.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}

	answer, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return nil, models.NewUpstreamError(models.OpComplete, err)
	}

	s.logger.Info().
		Bool("grounded", grounded).
		Int("answer_length", len(answer)).
		Dur("duration", time.Since(start)).
		Msg("Question answered")

	response := &interfaces.AskResponse{
		Answer:   answer,
		Grounded: grounded,
		Score:    bestScore,
	}
	if grounded {
		response.Source = best
	}
	return response, nil
}

// Search returns up to limit documents ordered by descending similarity to
// the query. Unlike Answer it applies no threshold, so weak matches are
// visible to callers inspecting retrieval quality.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]interfaces.ScoredDocument, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty: %w", models.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 10
	}

	queryVector, err := s.embedder.GenerateQueryEmbedding(ctx, query)
	if err != nil {
		return nil, models.NewUpstreamError(models.OpEmbed, err)
	}

	docs, err := s.documents.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed documents: %w", err)
	}

	scored := make([]interfaces.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		if doc.Text == "" || len(doc.Vector) != len(queryVector) || vectorNorm(doc.Vector) == 0 {
			continue
		}
		scored = append(scored, interfaces.ScoredDocument{
			Document: doc,
			Score:    cosineSimilarity(queryVector, doc.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// findBestMatch scans every indexed document and returns the one with the
// highest cosine similarity to the query vector. Documents with missing text,
// missing or zero-magnitude vectors, or mismatched dimensions are skipped and
// logged, so a degenerate vector can never be selected as the match. Ties keep
// the first document in storage scan order, which is stable across rebuilds
// of identical source data.
func (s *Service) findBestMatch(queryVector []float64) (*models.IndexedDocument, float64) {
	docs, err := s.documents.ListAll()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list indexed documents, answering without context")
		return nil, 0
	}
	if len(docs) == 0 {
		return nil, 0
	}

	var best *models.IndexedDocument
	bestScore := 0.0
	for _, doc := range docs {
		if doc.Text == "" || len(doc.Vector) == 0 {
			s.logger.Warn().
				Str("doc_id", doc.ID).
				Str("source_id", doc.SourceID).
				Msg("Skipping corrupt document: missing text or vector")
			continue
		}
		if len(doc.Vector) != len(queryVector) {
			s.logger.Warn().
				Str("doc_id", doc.ID).
				Int("doc_dim", len(doc.Vector)).
				Int("query_dim", len(queryVector)).
				Msg("Skipping document with mismatched vector dimension")
			continue
		}
		if vectorNorm(doc.Vector) == 0 {
			s.logger.Warn().
				Str("doc_id", doc.ID).
				Str("source_id", doc.SourceID).
				Msg("Skipping corrupt document: zero-magnitude vector")
			continue
		}

		score := cosineSimilarity(queryVector, doc.Vector)
		if best == nil || score > bestScore {
			best = doc
			bestScore = score
		}
	}

	return best, bestScore
}

// HealthCheck verifies the embedding and completion backends are reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if !s.embedder.IsAvailable(ctx) {
		return fmt.Errorf("embedding service is not available")
	}
	return s.llm.HealthCheck(ctx)
}
