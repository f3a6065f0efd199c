package models

import "time"

// Source record types for indexed documents.
const (
	SourceTypeCourse = "course"
	SourceTypeLesson = "lesson"
	SourceTypeDetail = "detail"
)

// IndexedDocument is the unit of retrieval: a canonical text serialization of
// one source record together with its embedding vector.
//
// Documents are created only by the corpus indexer. Each rebuild writes a
// complete set of documents under a fresh generation tag and swaps the current
// generation pointer once every record has been embedded, so readers never see
// a partially built corpus. Vector length is constant within a generation.
type IndexedDocument struct {
	ID         string    `json:"id"`          // doc_{uuid}
	SourceID   string    `json:"source_id"`   // originating record id, unique per type within a generation
	SourceType string    `json:"source_type"` // course, lesson, detail
	Generation string    `json:"generation"`  // gen_{uuid}, set by the indexer run that produced the document
	Text       string    `json:"text"`        // canonical serialization, never empty
	Vector     []float64 `json:"vector"`
	CreatedAt  time.Time `json:"created_at"`
}

// IndexStats summarizes the current state of the indexed corpus.
type IndexStats struct {
	TotalDocuments    int            `json:"total_documents"`
	DocumentsBySource map[string]int `json:"documents_by_source"`
	Generation        string         `json:"generation"`
	LastRebuilt       time.Time      `json:"last_rebuilt"`
}
