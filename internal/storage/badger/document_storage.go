package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// generationPointer is the single record naming the active corpus generation.
// Swapping it is the publish step of an index rebuild.
type generationPointer struct {
	Key        string // always generationPointerKey
	Generation string
	SwappedAt  time.Time
}

const generationPointerKey = "current-generation"

// DocumentStorage implements the DocumentStorage interface for Badger
type DocumentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewDocumentStorage creates a new DocumentStorage instance
func NewDocumentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.DocumentStorage {
	return &DocumentStorage{
		db:     db,
		logger: logger,
	}
}

func (s *DocumentStorage) Insert(doc *models.IndexedDocument) error {
	if doc.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if doc.Generation == "" {
		return fmt.Errorf("document generation is required")
	}
	if doc.Text == "" {
		return fmt.Errorf("document text must not be empty")
	}

	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	if err := s.db.Store().Insert(doc.ID, doc); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (s *DocumentStorage) ListAll() ([]*models.IndexedDocument, error) {
	gen, err := s.CurrentGeneration()
	if err != nil {
		return nil, err
	}
	if gen == "" {
		return []*models.IndexedDocument{}, nil
	}

	var docs []models.IndexedDocument
	if err := s.db.Store().Find(&docs, badgerhold.Where("Generation").Eq(gen)); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	// Deterministic scan order: CreatedAt, then ID. Ties during retrieval
	// keep the first-seen document, so this ordering is part of the contract.
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	result := make([]*models.IndexedDocument, len(docs))
	for i := range docs {
		result[i] = &docs[i]
	}
	return result, nil
}

func (s *DocumentStorage) Count() (int, error) {
	gen, err := s.CurrentGeneration()
	if err != nil {
		return 0, err
	}
	if gen == "" {
		return 0, nil
	}

	count, err := s.db.Store().Count(&models.IndexedDocument{}, badgerhold.Where("Generation").Eq(gen))
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return int(count), nil
}

func (s *DocumentStorage) CurrentGeneration() (string, error) {
	var ptr generationPointer
	if err := s.db.Store().Get(generationPointerKey, &ptr); err != nil {
		if err == badgerhold.ErrNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to read generation pointer: %w", err)
	}
	return ptr.Generation, nil
}

func (s *DocumentStorage) SetCurrentGeneration(gen string) error {
	ptr := generationPointer{
		Key:        generationPointerKey,
		Generation: gen,
		SwappedAt:  time.Now(),
	}
	if err := s.db.Store().Upsert(generationPointerKey, &ptr); err != nil {
		return fmt.Errorf("failed to set generation pointer: %w", err)
	}

	s.logger.Info().Str("generation", gen).Msg("Corpus generation published")
	return nil
}

func (s *DocumentStorage) DeleteGeneration(gen string) error {
	if gen == "" {
		return nil
	}
	if err := s.db.Store().DeleteMatching(&models.IndexedDocument{}, badgerhold.Where("Generation").Eq(gen)); err != nil {
		return fmt.Errorf("failed to delete generation %s: %w", gen, err)
	}
	return nil
}

func (s *DocumentStorage) Generations() ([]string, error) {
	var docs []models.IndexedDocument
	if err := s.db.Store().Find(&docs, badgerhold.Where("ID").Ne("")); err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	seen := make(map[string]bool)
	gens := []string{}
	for i := range docs {
		if !seen[docs[i].Generation] {
			seen[docs[i].Generation] = true
			gens = append(gens, docs[i].Generation)
		}
	}
	sort.Strings(gens)
	return gens, nil
}
