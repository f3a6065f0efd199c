package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/models"
)

// AskHandler handles question-answering HTTP requests
type AskHandler struct {
	askService interfaces.AskService
	logger     arbor.ILogger
}

// NewAskHandler creates a new ask handler with dependencies
func NewAskHandler(askService interfaces.AskService, logger arbor.ILogger) *AskHandler {
	return &AskHandler{
		askService: askService,
		logger:     logger,
	}
}

// AskHandler handles POST /ask requests
func (h *AskHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req interfaces.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	response, err := h.askService.Answer(r.Context(), req.Prompt)
	if err != nil {
		h.writeAskError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, response)
}

// writeAskError maps service errors to HTTP status codes. Upstream failures
// surface as 500 with the failing operation logged for diagnosis.
func (h *AskHandler) writeAskError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrInvalidInput) {
		WriteError(w, http.StatusBadRequest, "Prompt cannot be empty")
		return
	}

	var upstream *models.UpstreamError
	if errors.As(err, &upstream) {
		h.logger.Error().
			Err(err).
			Str("operation", string(upstream.Op)).
			Msg("Upstream LLM call failed")
		WriteError(w, http.StatusInternalServerError, "Failed to answer question: "+string(upstream.Op)+" service unavailable")
		return
	}

	h.logger.Error().Err(err).Msg("Failed to answer question")
	WriteError(w, http.StatusInternalServerError, "Failed to answer question")
}
