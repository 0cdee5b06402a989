package store

import (
	"context"
	"time"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/google/uuid"
)

// ReadingStore defines the persistence contract for readings. Two variants
// exist, the single-device local store and the networked multi-user Postgres
// store, and callers must not be able to tell them apart.
type ReadingStore interface {
	// Create persists a new reading as a whole record; no partial write is
	// observable. The entity must already be valid (built via
	// domain.NewReading). Backend failures wrap ErrPersistenceFailure.
	Create(ctx context.Context, reading *domain.Reading) error

	// GetByID retrieves a reading by its unique ID.
	// Returns ErrReadingNotFound when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error)

	// List returns readings ordered by creation time descending. When userID
	// is non-nil only that user's readings are returned, otherwise all
	// readings visible to the store's scope.
	List(ctx context.Context, userID *uuid.UUID) ([]*domain.Reading, error)

	// UpdateInterpretation attaches an AI interpretation to an existing
	// reading. It merges: every other field is preserved. Idempotent, and
	// last write wins on retry. Returns ErrReadingNotFound when the id is
	// unknown.
	UpdateInterpretation(ctx context.Context, id uuid.UUID, interpretation *domain.Interpretation, generatedAt time.Time) error

	// Delete removes a reading. Deleting an absent id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
