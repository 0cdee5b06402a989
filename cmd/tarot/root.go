package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/bkjNprosoft/tarot-2026/internal/catalog"
	"github.com/bkjNprosoft/tarot-2026/internal/config"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/gemini"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/localstore"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/postgres"
	"github.com/bkjNprosoft/tarot-2026/internal/service"
	"github.com/bkjNprosoft/tarot-2026/internal/store"
)

// cliApp bundles the dependencies the subcommands share. The CLI logs
// quietly; command output goes to stdout, diagnostics to the configured
// slog handler.
type cliApp struct {
	config         *config.Config
	logger         *slog.Logger
	catalog        *catalog.Catalog
	readingStore   store.ReadingStore
	readingService *service.ReadingService
	closer         io.Closer
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tarot",
		Short: "Draw and browse 2026 tarot readings",
		Long: `tarot draws three-card readings for a chosen category, saves them,
and asks the AI for an interpretation. Readings land in the same store
the API server uses.`,
		SilenceUsage: true,
	}

	root.AddCommand(newDrawCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newShowCmd())
	return root
}

// newCLIApp loads configuration and wires the store, catalog, and
// interpretation pipeline. Callers must Close it.
func newCLIApp() (*cliApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Only warnings and errors; the CLI's own output is the interface.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load card catalog: %w", err)
	}

	app := &cliApp{config: cfg, logger: logger, catalog: cat}

	switch cfg.Store.Backend {
	case "postgres":
		db, err := sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		app.readingStore = postgres.NewPostgresReadingStore(db, logger)
		app.closer = db
	case "local":
		app.readingStore, err = localstore.NewFileReadingStore(cfg.Store.LocalPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open local store: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	var interpreter generation.Interpreter = gemini.NewInterpreter(cfg.LLM, logger)
	app.readingService = service.NewReadingService(app.readingStore, cat, interpreter, logger)

	return app, nil
}

// Close releases backend resources.
func (a *cliApp) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
