package handlers

import (
	"context"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// IndexHandler handles corpus index management HTTP requests
type IndexHandler struct {
	indexerService interfaces.IndexerService
	logger         arbor.ILogger
}

// NewIndexHandler creates a new index handler with dependencies
func NewIndexHandler(indexerService interfaces.IndexerService, logger arbor.ILogger) *IndexHandler {
	return &IndexHandler{
		indexerService: indexerService,
		logger:         logger,
	}
}

// RebuildHandler handles POST /api/index/rebuild requests. The rebuild runs
// in the background; progress is visible through the status endpoint.
func (h *IndexHandler) RebuildHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if h.indexerService.IsRebuilding() {
		WriteError(w, http.StatusConflict, "Index rebuild already in progress")
		return
	}

	go func() {
		stats, err := h.indexerService.RebuildIndex(context.Background())
		if err != nil {
			h.logger.Error().Err(err).Msg("Index rebuild failed")
			return
		}
		h.logger.Info().
			Str("generation", stats.Generation).
			Int("total_documents", stats.TotalDocuments).
			Msg("Index rebuild finished")
	}()

	WriteStarted(w, "Index rebuild started")
}

// StatusHandler handles GET /api/index/status requests
func (h *IndexHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := h.indexerService.Stats()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read index stats")
		WriteError(w, http.StatusInternalServerError, "Failed to read index stats")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"rebuilding":          h.indexerService.IsRebuilding(),
		"total_documents":     stats.TotalDocuments,
		"documents_by_source": stats.DocumentsBySource,
		"generation":          stats.Generation,
		"last_rebuilt":        stats.LastRebuilt,
	})
}
