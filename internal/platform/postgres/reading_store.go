package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/logger"
	"github.com/bkjNprosoft/tarot-2026/internal/store"
)

// PostgresReadingStore implements the store.ReadingStore interface
// using a PostgreSQL database as the storage backend. Card lists,
// orientations, and the AI interpretation are stored as JSONB columns.
type PostgresReadingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReadingStore creates a new PostgreSQL implementation of the
// ReadingStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReadingStore(db store.DBTX, logger *slog.Logger) *PostgresReadingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReadingStore{
		db:     db,
		logger: logger.With(slog.String("component", "reading_store")),
	}
}

// Ensure PostgresReadingStore implements store.ReadingStore interface
var _ store.ReadingStore = (*PostgresReadingStore)(nil)

// Create implements store.ReadingStore.Create
// It saves a new reading to the database, handling domain validation.
// Returns store.ErrDuplicate if a reading with the same ID already exists.
func (s *PostgresReadingStore) Create(ctx context.Context, reading *domain.Reading) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reading.Validate(); err != nil {
		log.Warn("reading validation failed during create",
			slog.String("error", err.Error()),
			slog.String("reading_id", reading.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	cards, orientations, interpretation, err := marshalReadingColumns(reading)
	if err != nil {
		log.Error("failed to encode reading",
			slog.String("error", err.Error()),
			slog.String("reading_id", reading.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrPersistenceFailure, err)
	}

	query := `
		INSERT INTO readings (id, user_id, category, cards, card_orientations,
			created_at, ai_interpretation, interpretation_generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		reading.ID,
		reading.UserID,
		reading.Category,
		cards,
		orientations,
		reading.CreatedAt,
		interpretation,
		reading.InterpretationGeneratedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate reading ID during create",
				slog.String("reading_id", reading.ID.String()))
			return fmt.Errorf("%w: reading with ID %s already exists",
				store.ErrDuplicate, reading.ID)
		}

		log.Error("failed to create reading",
			slog.String("error", err.Error()),
			slog.String("reading_id", reading.ID.String()))
		return MapError(err)
	}

	log.Info("reading created successfully",
		slog.String("reading_id", reading.ID.String()),
		slog.String("category", string(reading.Category)))
	return nil
}

// GetByID implements store.ReadingStore.GetByID
// Returns store.ErrReadingNotFound if the reading does not exist.
func (s *PostgresReadingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving reading by ID", slog.String("reading_id", id.String()))

	query := `
		SELECT id, user_id, category, cards, card_orientations,
			created_at, ai_interpretation, interpretation_generated_at
		FROM readings
		WHERE id = $1
	`

	reading, err := scanReading(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("reading not found", slog.String("reading_id", id.String()))
			return nil, store.ErrReadingNotFound
		}
		log.Error("failed to get reading by ID",
			slog.String("error", err.Error()),
			slog.String("reading_id", id.String()))
		return nil, MapError(err)
	}

	return reading, nil
}

// List implements store.ReadingStore.List
// It retrieves readings ordered by creation time, newest first. When userID
// is non-nil only that user's readings are returned.
// Returns an empty slice if no readings match.
func (s *PostgresReadingStore) List(ctx context.Context, userID *uuid.UUID) ([]*domain.Reading, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, category, cards, card_orientations,
			created_at, ai_interpretation, interpretation_generated_at
		FROM readings
	`
	args := []any{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query readings",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var readings []*domain.Reading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			log.Error("failed to scan reading row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if readings == nil {
		readings = []*domain.Reading{}
	}

	log.Debug("listed readings", slog.Int("count", len(readings)))
	return readings, nil
}

// UpdateInterpretation implements store.ReadingStore.UpdateInterpretation
// It attaches the AI interpretation to an existing reading without touching
// the drawn cards or creation time.
// Returns store.ErrReadingNotFound if the reading does not exist.
func (s *PostgresReadingStore) UpdateInterpretation(
	ctx context.Context,
	id uuid.UUID,
	interpretation *domain.Interpretation,
	generatedAt time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if interpretation == nil {
		return fmt.Errorf("%w: interpretation cannot be nil", store.ErrInvalidEntity)
	}
	if err := interpretation.Validate(); err != nil {
		log.Warn("interpretation validation failed during update",
			slog.String("error", err.Error()),
			slog.String("reading_id", id.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	encoded, err := json.Marshal(interpretation)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersistenceFailure, err)
	}

	query := `
		UPDATE readings
		SET ai_interpretation = $1, interpretation_generated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, encoded, generatedAt, id)
	if err != nil {
		log.Error("failed to update reading interpretation",
			slog.String("error", err.Error()),
			slog.String("reading_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("reading_id", id.String()))
		return MapError(err)
	}

	if rowsAffected == 0 {
		log.Debug("reading not found for interpretation update",
			slog.String("reading_id", id.String()))
		return store.ErrReadingNotFound
	}

	log.Info("reading interpretation updated successfully",
		slog.String("reading_id", id.String()))
	return nil
}

// Delete implements store.ReadingStore.Delete
// Deletion is idempotent: deleting an absent reading is not an error.
func (s *PostgresReadingStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM readings WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete reading",
			slog.String("error", err.Error()),
			slog.String("reading_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("reading_id", id.String()))
		return MapError(err)
	}

	log.Info("reading deleted",
		slog.String("reading_id", id.String()),
		slog.Bool("existed", rowsAffected > 0))
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(row rowScanner) (*domain.Reading, error) {
	var (
		reading        domain.Reading
		cards          []byte
		orientations   []byte
		interpretation []byte
	)

	err := row.Scan(
		&reading.ID,
		&reading.UserID,
		&reading.Category,
		&cards,
		&orientations,
		&reading.CreatedAt,
		&interpretation,
		&reading.InterpretationGeneratedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(cards, &reading.Cards); err != nil {
		return nil, fmt.Errorf("decoding cards column: %w", err)
	}
	if err := json.Unmarshal(orientations, &reading.CardOrientations); err != nil {
		return nil, fmt.Errorf("decoding card_orientations column: %w", err)
	}
	if len(interpretation) > 0 {
		var in domain.Interpretation
		if err := json.Unmarshal(interpretation, &in); err != nil {
			return nil, fmt.Errorf("decoding ai_interpretation column: %w", err)
		}
		reading.AIInterpretation = &in
	}

	return &reading, nil
}

func marshalReadingColumns(reading *domain.Reading) (cards, orientations, interpretation []byte, err error) {
	cards, err = json.Marshal(reading.Cards)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding cards: %w", err)
	}
	orientations, err = json.Marshal(reading.CardOrientations)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding card orientations: %w", err)
	}
	if reading.AIInterpretation != nil {
		interpretation, err = json.Marshal(reading.AIInterpretation)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encoding interpretation: %w", err)
		}
	}
	return cards, orientations, interpretation, nil
}
