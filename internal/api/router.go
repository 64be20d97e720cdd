package api

import (
	"net/http"

	"log/slog"

	"github.com/gramops/gramops/internal/auth"
	"github.com/gramops/gramops/internal/automation"
	"github.com/gramops/gramops/internal/composer"
	"github.com/gramops/gramops/internal/database"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	mux *http.ServeMux,
	dispatcher *automation.Dispatcher,
	userRepo *database.UserRepository,
	credentialRepo *database.CredentialRepository,
	activityRepo *database.ActivityLogRepository,
	checker SessionChecker,
	comp *composer.Composer,
	authConfig auth.Config,
	logger *slog.Logger,
) {
	authHandler := NewAuthHandler(userRepo, authConfig, logger)
	automationHandler := NewAutomationHandler(dispatcher, logger)
	credentialHandler := NewCredentialHandler(credentialRepo, checker, logger)
	activityHandler := NewActivityLogHandler(activityRepo, logger)
	composeHandler := NewComposeHandler(comp, logger)

	authMiddleware := auth.Middleware(authConfig)

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				setCORSHeaders(w)
				w.WriteHeader(http.StatusOK)
				return
			}
			authMiddleware(h).ServeHTTP(w, r)
		}
	}

	// Authentication routes (public)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/validate", protected(authHandler.ValidateToken))

	// Automation dispatch
	mux.HandleFunc("/api/automation", protected(automationHandler.Dispatch))

	// Session credentials
	mux.HandleFunc("/api/credentials", protected(credentialHandler.HandleCredentials))
	mux.HandleFunc("/api/credentials/", protected(credentialHandler.HandleCredentialByID))

	// Activity history
	mux.HandleFunc("/api/activity-logs", protected(activityHandler.ListActivities))

	// Comment suggestions
	mux.HandleFunc("/api/compose-comment", protected(composeHandler.SuggestComment))
}
