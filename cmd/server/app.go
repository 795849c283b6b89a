package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uditisharmaaa/journa/internal/config"
	"github.com/uditisharmaaa/journa/internal/insights"
	"github.com/uditisharmaaa/journa/internal/platform/cohere"
	"github.com/uditisharmaaa/journa/internal/platform/gemini"
	"github.com/uditisharmaaa/journa/internal/platform/postgres"
	"github.com/uditisharmaaa/journa/internal/service/auth"
	"github.com/uditisharmaaa/journa/internal/store"
	"github.com/uditisharmaaa/journa/internal/workflow"
)

const defaultInsightsCacheTTL = 60 * time.Second

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore  store.UserStore
	entryStore store.EntryStore

	// Services
	jwtService      auth.JWTService
	passwordService *auth.BcryptService
	workflows       *workflow.Manager
	insights        *insights.Service
}

// newApplication creates an application instance with all dependencies
// initialized. Core dependencies like configuration, logger, and the
// database connection must be established before calling it.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwordService = auth.NewBcryptService(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.entryStore = postgres.NewPostgresEntryStore(db, logger)

	classifier, err := cohere.NewClassifier(logger, cfg.Classifier)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize distortion classifier: %w", err)
	}

	reframer, err := gemini.NewReframer(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize reframe generator: %w", err)
	}
	logger.Info("Reframe generator initialized",
		slog.String("model", cfg.LLM.ModelName))

	app.workflows, err = workflow.NewManager(classifier, reframer, app.entryStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize workflow manager: %w", err)
	}

	cacheTTL := defaultInsightsCacheTTL
	if cfg.Insights.CacheTTLSeconds > 0 {
		cacheTTL = time.Duration(cfg.Insights.CacheTTLSeconds) * time.Second
	}
	app.insights, err = insights.NewService(app.entryStore, cacheTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize insights service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter(ctx)

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
