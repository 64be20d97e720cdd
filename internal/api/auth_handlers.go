package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/gramops/gramops/internal/auth"
	"github.com/gramops/gramops/internal/database"
	"github.com/gramops/gramops/internal/models"
)

// AuthHandler handles operator registration and login.
type AuthHandler struct {
	users  *database.UserRepository
	config auth.Config
	logger *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(users *database.UserRepository, config auth.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		config: config,
		logger: logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		http.Error(w, "A valid email is required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		http.Error(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		http.Error(w, "Email is already registered", http.StatusConflict)
		return
	} else if !errors.Is(err, database.ErrUserNotFound) {
		h.logger.Error("failed to look up user", "error", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	user, err := h.users.Create(r.Context(), models.User{Email: req.Email, PasswordHash: hash})
	if err != nil {
		h.logger.Error("failed to create user", "error", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	h.writeToken(w, http.StatusCreated, user.ID)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		if !errors.Is(err, database.ErrUserNotFound) {
			h.logger.Error("failed to look up user", "error", err)
		}
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)
	h.writeToken(w, http.StatusOK, user.ID)
}

// ValidateToken handles GET /api/auth/validate (behind auth middleware)
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"valid":   true,
		"user_id": userID,
	})
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, status int, userID string) {
	token, err := auth.GenerateToken(userID, h.config.JWTSecret, h.config.TokenDuration)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, status, tokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.config.TokenDuration),
		UserID:    userID,
	})
}
