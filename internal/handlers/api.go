package handlers

import (
	"net/http"
	"runtime"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

type APIHandler struct {
	indexer interfaces.IndexerService
	logger  arbor.ILogger
}

func NewAPIHandler(indexer interfaces.IndexerService) *APIHandler {
	return &APIHandler{
		indexer: indexer,
		logger:  common.GetLogger(),
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"service":    "doceo",
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
		"go_version": runtime.Version(),
	})
}

// HealthHandler reports process health along with corpus readiness, so a
// probe can tell an unindexed service apart from a dead one.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	response := map[string]interface{}{
		"status":  "ok",
		"service": "doceo",
	}

	stats, err := h.indexer.Stats()
	switch {
	case err != nil:
		response["corpus"] = "unavailable"
	case stats.Generation == "":
		response["corpus"] = "empty"
	default:
		response["corpus"] = "ready"
		response["documents"] = stats.TotalDocuments
	}

	WriteJSON(w, http.StatusOK, response)
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
