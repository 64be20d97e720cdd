package api

import (
	"net/http"
	"strconv"

	"log/slog"

	"github.com/gramops/gramops/internal/auth"
	"github.com/gramops/gramops/internal/database"
)

// ActivityLogHandler serves the caller's dispatch history.
type ActivityLogHandler struct {
	repo   *database.ActivityLogRepository
	logger *slog.Logger
}

// NewActivityLogHandler creates a new activity log handler.
func NewActivityLogHandler(repo *database.ActivityLogRepository, logger *slog.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		repo:   repo,
		logger: logger,
	}
}

// ListActivities handles GET /api/activity-logs
func (h *ActivityLogHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	logs, err := h.repo.ListByUser(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list activity logs", "user_id", userID, "error", err)
		http.Error(w, "Failed to retrieve activity logs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"logs":  logs,
		"count": len(logs),
	})
}
