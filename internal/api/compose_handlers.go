package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/gramops/gramops/internal/composer"
)

// ComposeHandler serves AI comment suggestions.
type ComposeHandler struct {
	composer *composer.Composer
	logger   *slog.Logger
}

// NewComposeHandler creates a new compose handler.
func NewComposeHandler(c *composer.Composer, logger *slog.Logger) *ComposeHandler {
	return &ComposeHandler{
		composer: c,
		logger:   logger,
	}
}

type composeRequest struct {
	PostDescription string `json:"postDescription"`
	Tone            string `json:"tone,omitempty"`
}

// SuggestComment handles POST /api/compose-comment
func (h *ComposeHandler) SuggestComment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.composer.Enabled() {
		http.Error(w, "Comment composer is not configured", http.StatusServiceUnavailable)
		return
	}

	var req composeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PostDescription == "" {
		http.Error(w, "postDescription is required", http.StatusBadRequest)
		return
	}

	comment, err := h.composer.Suggest(r.Context(), req.PostDescription, req.Tone)
	if err != nil {
		h.logger.Error("failed to generate comment suggestion", "error", err)
		http.Error(w, "Failed to generate comment suggestion", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"comment": comment})
}
