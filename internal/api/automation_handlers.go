package api

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/gramops/gramops/internal/auth"
	"github.com/gramops/gramops/internal/automation"
	"github.com/gramops/gramops/internal/models"
)

// AutomationHandler exposes the action dispatcher over HTTP.
type AutomationHandler struct {
	dispatcher *automation.Dispatcher
	logger     *slog.Logger
}

// NewAutomationHandler creates a new automation handler.
func NewAutomationHandler(dispatcher *automation.Dispatcher, logger *slog.Logger) *AutomationHandler {
	return &AutomationHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Dispatch handles POST /api/automation. The HTTP status only reflects
// whether the request reached the dispatcher; the action-level outcome is
// carried in the JSON body for both success and failure.
func (h *AutomationHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Kind == "" {
		http.Error(w, "Action type is required", http.StatusBadRequest)
		return
	}

	result := h.dispatcher.Dispatch(r.Context(), userID, req)
	writeJSON(w, http.StatusOK, result)
}
