package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bkjNprosoft/tarot-2026/internal/catalog"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
	"github.com/bkjNprosoft/tarot-2026/internal/store"
)

// interpretationTimeout bounds the whole interpretation operation, slightly
// wider than the generation backend's own call deadline so backend timeouts
// surface as generation.ErrTimeout rather than a blunt context cancel.
const interpretationTimeout = 35 * time.Second

// ReadingService implements the reading lifecycle: creating a reading from
// a completed draw, retrieval, deletion, and attaching an AI
// interpretation.
type ReadingService struct {
	readingStore store.ReadingStore
	catalog      *catalog.Catalog
	interpreter  generation.Interpreter
	logger       *slog.Logger
}

// NewReadingService creates a ReadingService. The interpreter may be nil
// when no generation backend is configured; interpretation requests then
// fail with generation.ErrMissingCredentials while every other operation
// keeps working.
func NewReadingService(
	readingStore store.ReadingStore,
	cat *catalog.Catalog,
	interpreter generation.Interpreter,
	logger *slog.Logger,
) *ReadingService {
	if readingStore == nil {
		panic("readingStore cannot be nil")
	}
	if cat == nil {
		panic("catalog cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReadingService{
		readingStore: readingStore,
		catalog:      cat,
		interpreter:  interpreter,
		logger:       logger.With(slog.String("component", "reading_service")),
	}
}

// CreateReading persists a completed three-card draw. Every card must exist
// in the catalog; card count, duplicates, and orientation parity are
// enforced by domain.NewReading.
func (s *ReadingService) CreateReading(
	ctx context.Context,
	userID *uuid.UUID,
	category domain.Category,
	drawn []domain.DrawnCard,
) (*domain.Reading, error) {
	for _, d := range drawn {
		if _, ok := s.catalog.CardByID(d.CardID); !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCard, d.CardID)
		}
	}

	reading, err := domain.NewReading(userID, category, drawn)
	if err != nil {
		return nil, err
	}

	if err := s.readingStore.Create(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to save reading: %w", err)
	}

	return reading, nil
}

// GetReading retrieves a reading by ID.
func (s *ReadingService) GetReading(ctx context.Context, id uuid.UUID) (*domain.Reading, error) {
	return s.readingStore.GetByID(ctx, id)
}

// ListReadings returns readings newest first, optionally filtered to one
// user.
func (s *ReadingService) ListReadings(ctx context.Context, userID *uuid.UUID) ([]*domain.Reading, error) {
	return s.readingStore.List(ctx, userID)
}

// DeleteReading removes a reading. Deleting an absent reading is not an
// error.
func (s *ReadingService) DeleteReading(ctx context.Context, id uuid.UUID) error {
	return s.readingStore.Delete(ctx, id)
}

// GenerateInterpretation produces an AI interpretation for an existing
// reading and persists it on success. The reading must be a full
// three-card reading whose cards all resolve against the catalog; legacy
// single-card records are readable but not interpretable.
func (s *ReadingService) GenerateInterpretation(ctx context.Context, id uuid.UUID) (*domain.Reading, error) {
	if s.interpreter == nil {
		return nil, generation.ErrMissingCredentials
	}

	reading, err := s.readingStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req, err := s.buildRequest(reading)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, interpretationTimeout)
	defer cancel()

	result, err := s.interpreter.Interpret(ctx, *req)
	if err != nil {
		return nil, err
	}

	generatedAt := time.Now().UTC()
	if err := s.readingStore.UpdateInterpretation(ctx, id, result.Interpretation, generatedAt); err != nil {
		return nil, fmt.Errorf("failed to save interpretation: %w", err)
	}

	reading.SetInterpretation(result.Interpretation, generatedAt)

	s.logger.InfoContext(ctx, "interpretation attached to reading",
		slog.String("reading_id", id.String()),
		slog.String("source", string(result.Source)))

	return reading, nil
}

// InterpretCards generates an interpretation for an ad-hoc card selection
// without requiring a stored reading. It backs the stateless
// interpretation endpoint.
func (s *ReadingService) InterpretCards(
	ctx context.Context,
	category domain.Category,
	drawn []domain.DrawnCard,
) (*generation.Result, error) {
	if s.interpreter == nil {
		return nil, generation.ErrMissingCredentials
	}

	cards, err := s.resolveCards(category, drawn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, interpretationTimeout)
	defer cancel()

	return s.interpreter.Interpret(ctx, generation.Request{
		Category: category,
		Cards:    cards,
	})
}

// buildRequest resolves a stored reading into a generation request.
func (s *ReadingService) buildRequest(reading *domain.Reading) (*generation.Request, error) {
	if len(reading.Cards) != domain.ReadingCardCount {
		return nil, fmt.Errorf("%w: reading has %d cards, interpretation needs %d",
			generation.ErrInvalidRequest, len(reading.Cards), domain.ReadingCardCount)
	}

	cards, err := s.resolveCards(reading.Category, reading.Drawn())
	if err != nil {
		return nil, err
	}

	return &generation.Request{
		Category: reading.Category,
		Cards:    cards,
	}, nil
}

// resolveCards looks up each drawn card in the catalog and attaches its
// orientation-aware, category-specific base meaning.
func (s *ReadingService) resolveCards(
	category domain.Category,
	drawn []domain.DrawnCard,
) ([]generation.CardContext, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", generation.ErrInvalidRequest, category)
	}
	if len(drawn) != domain.ReadingCardCount {
		return nil, fmt.Errorf("%w: got %d cards, want %d",
			generation.ErrInvalidRequest, len(drawn), domain.ReadingCardCount)
	}

	cards := make([]generation.CardContext, len(drawn))
	seen := make(map[string]struct{}, len(drawn))
	for i, d := range drawn {
		if _, dup := seen[d.CardID]; dup {
			return nil, fmt.Errorf("%w: duplicate card %s", generation.ErrInvalidRequest, d.CardID)
		}
		seen[d.CardID] = struct{}{}

		card, ok := s.catalog.CardByID(d.CardID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown card %s", generation.ErrInvalidRequest, d.CardID)
		}

		cards[i] = generation.CardContext{
			CardID:        card.ID,
			Name:          card.Name,
			LocalizedName: card.LocalizedName,
			Keywords:      card.Keywords,
			Reversed:      d.Reversed,
			BaseMeaning:   card.Meaning(d.Reversed, category),
		}
	}
	return cards, nil
}
