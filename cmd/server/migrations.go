package main

import (
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/bkjNprosoft/tarot-2026/internal/config"
	"github.com/bkjNprosoft/tarot-2026/migrations"
)

// handleMigrations runs the requested goose command against the configured
// postgres database and returns. Migrations only apply to the postgres
// backend; the local file store needs none.
func handleMigrations(cfg *config.Config, command string) error {
	if cfg.Store.Backend != "postgres" {
		return fmt.Errorf("migrations require the postgres backend, got %q", cfg.Store.Backend)
	}

	db, err := setupAppDatabase(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	slog.Info("migrations completed", "command", command)
	return nil
}
