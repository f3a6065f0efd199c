package interfaces

import (
	"context"

	"github.com/ternarybob/doceo/internal/models"
)

// AskRequest is a single question posed against the indexed corpus.
type AskRequest struct {
	Prompt string `json:"prompt"`
}

// AskResponse carries the model's answer plus retrieval telemetry.
type AskResponse struct {
	Answer string `json:"answer"`

	// Grounded reports whether a retrieved document was injected as context.
	Grounded bool `json:"grounded"`

	// Score is the best cosine similarity seen during the scan, 0 when the
	// corpus is empty.
	Score float64 `json:"score"`

	// Source identifies the grounding document when Grounded is true.
	Source *models.IndexedDocument `json:"-"`
}

// ScoredDocument pairs an indexed document with its similarity to a query.
type ScoredDocument struct {
	Document *models.IndexedDocument `json:"document"`
	Score    float64                 `json:"score"`
}

// AskService answers free-text questions, optionally grounding them in the
// single most relevant indexed document.
type AskService interface {
	// Answer embeds the question, scans the corpus for the best cosine match,
	// and forwards either an augmented or raw prompt to the completion model.
	// Returns models.ErrInvalidInput for empty questions and
	// *models.UpstreamError on provider failures.
	Answer(ctx context.Context, question string) (*AskResponse, error)

	// Search embeds the query and returns up to limit indexed documents
	// ordered by descending similarity. No threshold is applied.
	Search(ctx context.Context, query string, limit int) ([]ScoredDocument, error)

	// HealthCheck verifies the underlying LLM providers are reachable.
	HealthCheck(ctx context.Context) error
}
