// Package localstore provides a single-file JSON implementation of
// store.ReadingStore for running without a database. Writes go through a
// temp file and rename so a crash never leaves a half-written store.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/logger"
	"github.com/bkjNprosoft/tarot-2026/internal/store"
)

// FileReadingStore implements store.ReadingStore on a JSON file. All
// operations load and persist the whole file under a mutex, which is fine
// for the single-process, low-volume workloads this backend targets.
type FileReadingStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewFileReadingStore creates a file-backed reading store at path. The file
// is created on first write; its parent directory must be creatable.
// If logger is nil, a default logger will be used.
func NewFileReadingStore(path string, logger *slog.Logger) (*FileReadingStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: store path cannot be empty", store.ErrPersistenceFailure)
	}
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating store directory: %v", store.ErrPersistenceFailure, err)
		}
	}

	return &FileReadingStore{
		path:   path,
		logger: logger.With(slog.String("component", "file_reading_store")),
	}, nil
}

// Ensure FileReadingStore implements store.ReadingStore interface
var _ store.ReadingStore = (*FileReadingStore)(nil)

// Create saves a new reading.
// Returns store.ErrDuplicate if a reading with the same ID already exists.
func (s *FileReadingStore) Create(ctx context.Context, reading *domain.Reading) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reading.Validate(); err != nil {
		log.Warn("reading validation failed during create",
			slog.String("error", err.Error()),
			slog.String("reading_id", reading.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	readings, err := s.load()
	if err != nil {
		return err
	}

	for _, existing := range readings {
		if existing.ID == reading.ID {
			return fmt.Errorf("%w: reading with ID %s already exists",
				store.ErrDuplicate, reading.ID)
		}
	}

	readings = append(readings, reading)
	if err := s.persist(readings); err != nil {
		return err
	}

	log.Info("reading created successfully",
		slog.String("reading_id", reading.ID.String()),
		slog.String("category", string(reading.Category)))
	return nil
}

// GetByID retrieves a reading by ID.
// Returns store.ErrReadingNotFound if the reading does not exist.
func (s *FileReadingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, reading := range readings {
		if reading.ID == id {
			return reading, nil
		}
	}
	return nil, store.ErrReadingNotFound
}

// List retrieves readings ordered by creation time, newest first. When
// userID is non-nil only that user's readings are returned.
func (s *FileReadingStore) List(ctx context.Context, userID *uuid.UUID) ([]*domain.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readings, err := s.load()
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Reading, 0, len(readings))
	for _, reading := range readings {
		if userID != nil {
			if reading.UserID == nil || *reading.UserID != *userID {
				continue
			}
		}
		filtered = append(filtered, reading)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// UpdateInterpretation attaches the AI interpretation to an existing
// reading without touching the drawn cards or creation time.
// Returns store.ErrReadingNotFound if the reading does not exist.
func (s *FileReadingStore) UpdateInterpretation(
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
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	readings, err := s.load()
	if err != nil {
		return err
	}

	for _, reading := range readings {
		if reading.ID == id {
			reading.SetInterpretation(interpretation, generatedAt)
			if err := s.persist(readings); err != nil {
				return err
			}
			log.Info("reading interpretation updated successfully",
				slog.String("reading_id", id.String()))
			return nil
		}
	}
	return store.ErrReadingNotFound
}

// Delete removes a reading. Deletion is idempotent: deleting an absent
// reading is not an error.
func (s *FileReadingStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	readings, err := s.load()
	if err != nil {
		return err
	}

	kept := readings[:0]
	existed := false
	for _, reading := range readings {
		if reading.ID == id {
			existed = true
			continue
		}
		kept = append(kept, reading)
	}

	if existed {
		if err := s.persist(kept); err != nil {
			return err
		}
	}

	log.Info("reading deleted",
		slog.String("reading_id", id.String()),
		slog.Bool("existed", existed))
	return nil
}

// load reads the whole store file. A missing file is an empty store.
// Callers must hold the mutex.
func (s *FileReadingStore) load() ([]*domain.Reading, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading store file: %v", store.ErrPersistenceFailure, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var readings []*domain.Reading
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, fmt.Errorf("%w: decoding store file: %v", store.ErrPersistenceFailure, err)
	}
	return readings, nil
}

// persist writes the whole store file atomically via temp file and rename.
// Callers must hold the mutex.
func (s *FileReadingStore) persist(readings []*domain.Reading) error {
	data, err := json.MarshalIndent(readings, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding store file: %v", store.ErrPersistenceFailure, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing store file: %v", store.ErrPersistenceFailure, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replacing store file: %v", store.ErrPersistenceFailure, err)
	}
	return nil
}
