package interfaces

import (
	"github.com/ternarybob/doceo/internal/models"
)

// DocumentStorage persists indexed documents. Writes happen only during an
// index rebuild; reads see whichever generation the current-generation
// pointer names. Listing is generation-scoped so an in-flight rebuild never
// leaks partial documents to readers.
type DocumentStorage interface {
	// Insert stores one indexed document under its generation tag.
	Insert(doc *models.IndexedDocument) error

	// ListAll returns every document of the current generation, ordered by
	// CreatedAt then ID so scans are deterministic.
	ListAll() ([]*models.IndexedDocument, error)

	// Count returns the number of documents in the current generation.
	Count() (int, error)

	// CurrentGeneration returns the active generation tag, or "" when no
	// generation has been published yet.
	CurrentGeneration() (string, error)

	// SetCurrentGeneration atomically publishes gen as the active generation.
	SetCurrentGeneration(gen string) error

	// DeleteGeneration removes every document carrying the given tag.
	DeleteGeneration(gen string) error

	// Generations lists all generation tags present in the store.
	Generations() ([]string, error)
}

// CourseStorage persists course source records. The indexer only reads;
// Save exists for the content loader and tests.
type CourseStorage interface {
	Save(course *models.Course) error
	ListAll() ([]*models.Course, error)
}

// LessonStorage persists lesson source records.
type LessonStorage interface {
	Save(lesson *models.Lesson) error
	ListAll() ([]*models.Lesson, error)
	ListByCourse(courseID string) ([]*models.Lesson, error)
}

// LessonDetailStorage persists lesson-detail source records.
type LessonDetailStorage interface {
	Save(detail *models.LessonDetail) error
	ListAll() ([]*models.LessonDetail, error)
	ListByLesson(lessonID string) ([]*models.LessonDetail, error)
}

// StorageManager is the composite interface for all storage operations.
type StorageManager interface {
	DocumentStorage() DocumentStorage
	CourseStorage() CourseStorage
	LessonStorage() LessonStorage
	LessonDetailStorage() LessonDetailStorage
	Close() error
}
