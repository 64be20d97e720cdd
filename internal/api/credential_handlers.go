package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/gramops/gramops/internal/auth"
	"github.com/gramops/gramops/internal/database"
	"github.com/gramops/gramops/internal/models"
)

// SessionChecker probes whether a stored credential still authenticates.
type SessionChecker interface {
	CheckSession(ctx context.Context, cookie string) bool
}

// CredentialHandler manages stored session credentials.
type CredentialHandler struct {
	repo    *database.CredentialRepository
	checker SessionChecker
	logger  *slog.Logger
}

// NewCredentialHandler creates a new credential handler.
func NewCredentialHandler(repo *database.CredentialRepository, checker SessionChecker, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{
		repo:    repo,
		checker: checker,
		logger:  logger,
	}
}

type createCredentialRequest struct {
	Label  string `json:"label"`
	Cookie string `json:"cookie"`
}

// credentialView hides the raw cookie from list responses.
type credentialView struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	CreatedAt string `json:"created_at"`
}

// HandleCredentials handles GET and POST /api/credentials.
func (h *CredentialHandler) HandleCredentials(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, userID)
	case http.MethodPost:
		h.create(w, r, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CredentialHandler) list(w http.ResponseWriter, r *http.Request, userID string) {
	creds, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list credentials", "user_id", userID, "error", err)
		http.Error(w, "Failed to retrieve credentials", http.StatusInternalServerError)
		return
	}

	views := make([]credentialView, 0, len(creds))
	for _, cred := range creds {
		views = append(views, credentialView{
			ID:        cred.ID,
			Label:     cred.Label,
			CreatedAt: cred.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"credentials": views,
		"count":       len(views),
	})
}

func (h *CredentialHandler) create(w http.ResponseWriter, r *http.Request, userID string) {
	var req createCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := ValidateCookie(req.Cookie); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cred, err := h.repo.Create(r.Context(), models.Credential{
		UserID: userID,
		Label:  strings.TrimSpace(req.Label),
		Cookie: strings.TrimSpace(req.Cookie),
	})
	if err != nil {
		h.logger.Error("failed to store credential", "user_id", userID, "error", err)
		http.Error(w, "Failed to store credential", http.StatusInternalServerError)
		return
	}

	h.logger.Info("credential stored", "user_id", userID, "credential_id", cred.ID)
	writeJSON(w, http.StatusCreated, credentialView{
		ID:        cred.ID,
		Label:     cred.Label,
		CreatedAt: cred.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// HandleCredentialByID handles DELETE /api/credentials/{id} and
// POST /api/credentials/{id}/check.
func (h *CredentialHandler) HandleCredentialByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/credentials/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}

	if id, found := strings.CutSuffix(rest, "/check"); found {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.check(w, r, userID, id)
		return
	}

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	deleted, err := h.repo.Delete(r.Context(), rest, userID)
	if err != nil {
		h.logger.Error("failed to delete credential", "credential_id", rest, "error", err)
		http.Error(w, "Failed to delete credential", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "Credential not found", http.StatusNotFound)
		return
	}

	h.logger.Info("credential deleted", "user_id", userID, "credential_id", rest)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *CredentialHandler) check(w http.ResponseWriter, r *http.Request, userID, id string) {
	cred, err := h.repo.Get(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "Credential not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load credential", "credential_id", id, "error", err)
		http.Error(w, "Failed to load credential", http.StatusInternalServerError)
		return
	}
	if cred.UserID != userID {
		http.Error(w, "Credential not found", http.StatusNotFound)
		return
	}

	valid := h.checker.CheckSession(r.Context(), cred.Cookie)
	writeJSON(w, http.StatusOK, map[string]any{
		"credential_id": cred.ID,
		"valid":         valid,
	})
}
