package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bkjNprosoft/tarot-2026/internal/catalog"
	"github.com/bkjNprosoft/tarot-2026/internal/config"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/gemini"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/localstore"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/postgres"
	"github.com/bkjNprosoft/tarot-2026/internal/service"
	"github.com/bkjNprosoft/tarot-2026/internal/service/auth"
	"github.com/bkjNprosoft/tarot-2026/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the local file backend is selected.
	db *sql.DB

	catalog      *catalog.Catalog
	readingStore store.ReadingStore
	userStore    store.UserStore

	jwtService  auth.JWTService
	interpreter generation.Interpreter

	readingService *service.ReadingService

	// userService is nil for the local backend; the account endpoints are
	// only served on the networked variant.
	userService *service.UserService
}

// newApplication creates an application instance with all dependencies
// initialized according to the configured store backend.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.catalog, err = catalog.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load card catalog: %w", err)
	}
	logger.Info("card catalog loaded", slog.Int("cards", app.catalog.Size()))

	switch cfg.Store.Backend {
	case "postgres":
		app.db, err = setupAppDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}

		app.readingStore = postgres.NewPostgresReadingStore(app.db, logger)
		app.userStore = postgres.NewPostgresUserStore(app.db, logger)

		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}

		verifier := auth.NewBcryptVerifier()
		app.userService = service.NewUserService(app.userStore, verifier, verifier, logger)

	case "local":
		app.readingStore, err = localstore.NewFileReadingStore(cfg.Store.LocalPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open local store: %w", err)
		}
		logger.Info("local reading store opened",
			slog.String("path", cfg.Store.LocalPath))

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	app.interpreter = gemini.NewInterpreter(cfg.LLM, logger)
	if cfg.LLM.GeminiAPIKey == "" {
		logger.Warn("no Gemini API key configured, interpretation requests will fail")
	}

	app.readingService = service.NewReadingService(
		app.readingStore,
		app.catalog,
		app.interpreter,
		logger,
	)

	logger.Info("application initialized",
		slog.String("store_backend", cfg.Store.Backend))
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection",
				slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
