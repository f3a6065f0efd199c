package indexer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"golang.org/x/time/rate"
)

// Service implements IndexerService. A rebuild writes a complete new corpus
// generation, then atomically publishes it and deletes prior generations.
// In-flight queries keep reading the previous generation until the swap.
type Service struct {
	storage    interfaces.StorageManager
	embedder   interfaces.EmbeddingService
	limiter    *rate.Limiter
	logger     arbor.ILogger
	rebuilding atomic.Bool

	mu          sync.RWMutex
	lastRebuilt time.Time
}

// NewService creates a new indexer service. embedInterval throttles calls to
// the embedding API during a rebuild; zero disables throttling.
func NewService(storage interfaces.StorageManager, embedder interfaces.EmbeddingService, embedInterval time.Duration, logger arbor.ILogger) interfaces.IndexerService {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if embedInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(embedInterval), 1)
	}

	return &Service{
		storage:  storage,
		embedder: embedder,
		limiter:  limiter,
		logger:   logger,
	}
}

// RebuildIndex rebuilds the whole corpus from source records. Only one
// rebuild may run at a time; concurrent callers get ErrRebuildInProgress.
// On any failure the previous generation stays published untouched and the
// aborted generation's documents are removed.
func (s *Service) RebuildIndex(ctx context.Context) (*models.IndexStats, error) {
	if !s.rebuilding.CompareAndSwap(false, true) {
		return nil, models.ErrRebuildInProgress
	}
	defer s.rebuilding.Store(false)

	start := time.Now()
	generation := "gen_" + uuid.New().String()

	s.logger.Info().
		Str("generation", generation).
		Msg("Corpus rebuild started")

	stats, err := s.buildGeneration(ctx, generation)
	if err != nil {
		s.discardGeneration(generation)
		return nil, err
	}

	s.mu.Lock()
	s.lastRebuilt = time.Now()
	stats.LastRebuilt = s.lastRebuilt
	s.mu.Unlock()

	// Old generations are garbage once the pointer moves. A failed cleanup
	// leaves orphaned documents behind but never an inconsistent corpus, so
	// it is logged rather than surfaced.
	s.cleanupGenerations(generation)

	s.logger.Info().
		Str("generation", generation).
		Int("total_documents", stats.TotalDocuments).
		Int("courses", stats.DocumentsBySource[models.SourceTypeCourse]).
		Int("lessons", stats.DocumentsBySource[models.SourceTypeLesson]).
		Int("details", stats.DocumentsBySource[models.SourceTypeDetail]).
		Dur("duration", time.Since(start)).
		Msg("Corpus rebuild complete")

	return stats, nil
}

// buildGeneration writes a complete document set under the given generation
// tag and publishes it. The generation pointer only moves after every record
// has been embedded and stored.
func (s *Service) buildGeneration(ctx context.Context, generation string) (*models.IndexStats, error) {
	courses, err := s.storage.CourseStorage().ListAll()
	if err != nil {
		return nil, models.NewIndexingError("serialize", fmt.Errorf("failed to list courses: %w", err))
	}
	lessons, err := s.storage.LessonStorage().ListAll()
	if err != nil {
		return nil, models.NewIndexingError("serialize", fmt.Errorf("failed to list lessons: %w", err))
	}
	details, err := s.storage.LessonDetailStorage().ListAll()
	if err != nil {
		return nil, models.NewIndexingError("serialize", fmt.Errorf("failed to list lesson details: %w", err))
	}

	lessonsByCourse := make(map[string][]*models.Lesson)
	for _, lesson := range lessons {
		lessonsByCourse[lesson.CourseID] = append(lessonsByCourse[lesson.CourseID], lesson)
	}
	detailsByLesson := make(map[string][]*models.LessonDetail)
	for _, detail := range details {
		detailsByLesson[detail.LessonID] = append(detailsByLesson[detail.LessonID], detail)
	}

	stats := &models.IndexStats{
		DocumentsBySource: make(map[string]int),
		Generation:        generation,
	}

	for _, course := range courses {
		text := serializeCourse(course, lessonsByCourse[course.ID])
		if err := s.indexDocument(ctx, generation, course.ID, models.SourceTypeCourse, text, stats); err != nil {
			return nil, err
		}
	}
	for _, lesson := range lessons {
		text := serializeLesson(lesson, detailsByLesson[lesson.ID])
		if err := s.indexDocument(ctx, generation, lesson.ID, models.SourceTypeLesson, text, stats); err != nil {
			return nil, err
		}
	}
	for _, detail := range details {
		text := serializeDetail(detail)
		if err := s.indexDocument(ctx, generation, detail.ID, models.SourceTypeDetail, text, stats); err != nil {
			return nil, err
		}
	}

	if err := s.storage.DocumentStorage().SetCurrentGeneration(generation); err != nil {
		return nil, models.NewIndexingError("swap", fmt.Errorf("failed to publish generation: %w", err))
	}

	return stats, nil
}

// indexDocument embeds one synthesized text and stores the resulting
// document. Records that serialize to empty text are skipped and logged.
func (s *Service) indexDocument(ctx context.Context, generation, sourceID, sourceType, text string, stats *models.IndexStats) error {
	if text == "" {
		s.logger.Warn().
			Str("source_id", sourceID).
			Str("source_type", sourceType).
			Msg("Skipping record with empty serialized text")
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return models.NewIndexingError("embed", fmt.Errorf("rate limit wait cancelled: %w", err))
	}

	vector, err := s.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return models.NewIndexingError("embed", fmt.Errorf("failed to embed %s %s: %w", sourceType, sourceID, err))
	}

	doc := &models.IndexedDocument{
		ID:         "doc_" + uuid.New().String(),
		SourceID:   sourceID,
		SourceType: sourceType,
		Generation: generation,
		Text:       text,
		Vector:     vector,
		CreatedAt:  time.Now(),
	}

	if err := s.storage.DocumentStorage().Insert(doc); err != nil {
		return models.NewIndexingError("store", fmt.Errorf("failed to store %s %s: %w", sourceType, sourceID, err))
	}

	stats.TotalDocuments++
	stats.DocumentsBySource[sourceType]++
	return nil
}

// discardGeneration removes the documents written by an aborted rebuild so
// they do not linger in storage until the next successful cleanup.
func (s *Service) discardGeneration(generation string) {
	if err := s.storage.DocumentStorage().DeleteGeneration(generation); err != nil {
		s.logger.Warn().
			Err(err).
			Str("generation", generation).
			Msg("Failed to delete aborted generation")
	}
}

func (s *Service) cleanupGenerations(current string) {
	documents := s.storage.DocumentStorage()

	generations, err := documents.Generations()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list generations for cleanup")
		return
	}

	for _, gen := range generations {
		if gen == current {
			continue
		}
		if err := documents.DeleteGeneration(gen); err != nil {
			s.logger.Warn().
				Err(err).
				Str("generation", gen).
				Msg("Failed to delete stale generation")
		}
	}
}

// IsRebuilding reports whether a rebuild is currently running.
func (s *Service) IsRebuilding() bool {
	return s.rebuilding.Load()
}

// Stats returns counts for the currently published corpus generation.
func (s *Service) Stats() (*models.IndexStats, error) {
	documents := s.storage.DocumentStorage()

	generation, err := documents.CurrentGeneration()
	if err != nil {
		return nil, fmt.Errorf("failed to read current generation: %w", err)
	}

	docs, err := documents.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed documents: %w", err)
	}

	stats := &models.IndexStats{
		TotalDocuments:    len(docs),
		DocumentsBySource: make(map[string]int),
		Generation:        generation,
	}
	for _, doc := range docs {
		stats.DocumentsBySource[doc.SourceType]++
	}

	s.mu.RLock()
	stats.LastRebuilt = s.lastRebuilt
	s.mu.RUnlock()

	return stats, nil
}
