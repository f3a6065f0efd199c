package interfaces

import (
	"context"

	"github.com/ternarybob/doceo/internal/models"
)

// IndexerService rebuilds the retrieval corpus from the source record stores.
type IndexerService interface {
	// RebuildIndex serializes every course, lesson, and lesson-detail record,
	// embeds each blob, and writes a complete new corpus generation. The
	// current-generation pointer is swapped only after every record has been
	// embedded and stored, so a failed run leaves the previous corpus live.
	//
	// Returns models.ErrRebuildInProgress when a rebuild is already running
	// and *models.IndexingError when the run fails; both leave the published
	// corpus untouched.
	RebuildIndex(ctx context.Context) (*models.IndexStats, error)

	// IsRebuilding reports whether a rebuild is currently in flight.
	IsRebuilding() bool

	// Stats returns counts and generation info for the published corpus.
	Stats() (*models.IndexStats, error)
}
