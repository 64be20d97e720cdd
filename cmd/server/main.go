package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/gramops/gramops/internal/api"
	"github.com/gramops/gramops/internal/auth"
	"github.com/gramops/gramops/internal/automation"
	"github.com/gramops/gramops/internal/cloudsql"
	"github.com/gramops/gramops/internal/composer"
	"github.com/gramops/gramops/internal/config"
	"github.com/gramops/gramops/internal/database"
	"github.com/gramops/gramops/internal/instagram"
	"github.com/gramops/gramops/internal/logging"
	"github.com/gramops/gramops/internal/metrics"
	"github.com/gramops/gramops/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting gramops")

	dbURL, err := cloudsql.ResolveURL()
	if err != nil {
		logger.Error("failed to resolve database connection", "error", err)
		os.Exit(1)
	}

	dbCfg := database.DefaultConfig()
	dbCfg.URL = dbURL

	logger.Info("connecting to database", "config", cloudsql.ConnectionSummary())
	db, err := database.Connect(context.Background(), dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	if err := database.RunMigrations(db, cfg.Database.MigrationsDir, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := database.NewUserRepository(db)
	credentialRepo := database.NewCredentialRepository(db)
	activityRepo := database.NewActivityLogRepository(db)

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// Remote platform client and the action dispatcher
	client := instagram.NewClient(logger, cfg.Platform.RequestTimeout)
	dispatcher := automation.NewDispatcher(client, credentialRepo, activityRepo, collector, logger)

	comp := composer.New(composer.Config{
		APIKey: cfg.Composer.OpenAIAPIKey,
		Model:  cfg.Composer.Model,
	}, logger)

	authConfig := auth.Config{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenDuration: cfg.Auth.TokenDuration,
	}
	logger.Info("auth configured", "jwt_secret_set", authConfig.JWTSecret != "change-this-secret")

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(r.Context(), db); err != nil {
			logger.Error("health check failed", "error", err)
			http.Error(w, `{"status":"unhealthy"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", collector.Handler())

	api.SetupRoutes(mux, dispatcher, userRepo, credentialRepo, activityRepo, client, comp, authConfig, logger)

	var handler http.Handler = mux
	if cfg.Server.StaticDir != "" {
		logger.Info("serving panel frontend", "static_dir", cfg.Server.StaticDir)
		handler = server.SPAMiddleware(mux, cfg.Server.StaticDir)
	}

	srv := server.New(cfg.Server, logger, collector.InstrumentHandler(handler))

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("gramops started", "port", cfg.Server.Port)

	waitForSignal(logger)

	logger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
