package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkjNprosoft/tarot-2026/internal/catalog"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
	"github.com/bkjNprosoft/tarot-2026/internal/store"
)

type fakeReadingStore struct {
	readings  map[uuid.UUID]*domain.Reading
	createErr error
	updateErr error
}

func newFakeReadingStore() *fakeReadingStore {
	return &fakeReadingStore{readings: make(map[uuid.UUID]*domain.Reading)}
}

func (f *fakeReadingStore) Create(_ context.Context, reading *domain.Reading) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.readings[reading.ID] = reading
	return nil
}

func (f *fakeReadingStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Reading, error) {
	reading, ok := f.readings[id]
	if !ok {
		return nil, store.ErrReadingNotFound
	}
	copied := *reading
	return &copied, nil
}

func (f *fakeReadingStore) List(_ context.Context, userID *uuid.UUID) ([]*domain.Reading, error) {
	var out []*domain.Reading
	for _, r := range f.readings {
		if userID != nil && (r.UserID == nil || *r.UserID != *userID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReadingStore) UpdateInterpretation(
	_ context.Context,
	id uuid.UUID,
	interpretation *domain.Interpretation,
	generatedAt time.Time,
) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	reading, ok := f.readings[id]
	if !ok {
		return store.ErrReadingNotFound
	}
	reading.SetInterpretation(interpretation, generatedAt)
	return nil
}

func (f *fakeReadingStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.readings, id)
	return nil
}

type fakeInterpreter struct {
	result   *generation.Result
	err      error
	requests []generation.Request
}

func (f *fakeInterpreter) Interpret(_ context.Context, req generation.Request) (*generation.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func parsedResult() *generation.Result {
	return &generation.Result{
		Interpretation: &domain.Interpretation{
			IndividualCards: []domain.CardInterpretation{
				{CardID: "the-fool", CardName: "바보", Interpretation: "a"},
			},
			Combination: domain.Combination{Summary: "s", Detailed: "d"},
		},
		Source: generation.SourceParsed,
	}
}

func serviceCards() []domain.DrawnCard {
	return []domain.DrawnCard{
		{CardID: "the-fool"},
		{CardID: "the-magician", Reversed: true},
		{CardID: "the-star"},
	}
}

func newTestReadingService(t *testing.T, st store.ReadingStore, in generation.Interpreter) *ReadingService {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReadingService(st, cat, in, logger)
}

func TestCreateReading(t *testing.T) {
	t.Parallel()

	st := newFakeReadingStore()
	svc := newTestReadingService(t, st, nil)

	reading, err := svc.CreateReading(context.Background(), nil, domain.CategoryLove, serviceCards())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, reading.ID)
	assert.Contains(t, st.readings, reading.ID)
}

func TestCreateReadingRejectsUnknownCard(t *testing.T) {
	t.Parallel()

	st := newFakeReadingStore()
	svc := newTestReadingService(t, st, nil)

	cards := serviceCards()
	cards[1].CardID = "the-joker"

	_, err := svc.CreateReading(context.Background(), nil, domain.CategoryGeneral, cards)
	assert.ErrorIs(t, err, domain.ErrUnknownCard)
	assert.Empty(t, st.readings)
}

func TestCreateReadingStoreFailure(t *testing.T) {
	t.Parallel()

	st := newFakeReadingStore()
	st.createErr = store.ErrPersistenceFailure
	svc := newTestReadingService(t, st, nil)

	_, err := svc.CreateReading(context.Background(), nil, domain.CategoryGeneral, serviceCards())
	assert.ErrorIs(t, err, store.ErrPersistenceFailure)
}

func TestGenerateInterpretation(t *testing.T) {
	t.Parallel()

	st := newFakeReadingStore()
	in := &fakeInterpreter{result: parsedResult()}
	svc := newTestReadingService(t, st, in)

	created, err := svc.CreateReading(context.Background(), nil, domain.CategoryCareer, serviceCards())
	require.NoError(t, err)

	reading, err := svc.GenerateInterpretation(context.Background(), created.ID)
	require.NoError(t, err)

	require.NotNil(t, reading.AIInterpretation)
	assert.Equal(t, "d", reading.AIInterpretation.Combination.Detailed)
	require.NotNil(t, reading.InterpretationGeneratedAt)

	// Persisted, not just mutated in memory.
	stored := st.readings[created.ID]
	require.NotNil(t, stored.AIInterpretation)
	assert.Equal(t, "s", stored.AIInterpretation.Combination.Summary)

	// The request carried resolved card context, reversed meaning included.
	require.Len(t, in.requests, 1)
	req := in.requests[0]
	assert.Equal(t, domain.CategoryCareer, req.Category)
	require.Len(t, req.Cards, 3)
	assert.True(t, req.Cards[1].Reversed)
	assert.NotEmpty(t, req.Cards[1].BaseMeaning)
}

func TestGenerateInterpretationWithoutBackend(t *testing.T) {
	t.Parallel()

	svc := newTestReadingService(t, newFakeReadingStore(), nil)

	_, err := svc.GenerateInterpretation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, generation.ErrMissingCredentials)
}

func TestGenerateInterpretationUnknownReading(t *testing.T) {
	t.Parallel()

	in := &fakeInterpreter{result: parsedResult()}
	svc := newTestReadingService(t, newFakeReadingStore(), in)

	_, err := svc.GenerateInterpretation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrReadingNotFound)
	assert.Empty(t, in.requests)
}

func TestGenerateInterpretationRejectsLegacyReading(t *testing.T) {
	t.Parallel()

	st := newFakeReadingStore()
	in := &fakeInterpreter{result: parsedResult()}
	svc := newTestReadingService(t, st, in)

	legacy := &domain.Reading{
		ID:        uuid.New(),
		Category:  domain.CategoryGeneral,
		Cards:     []string{"the-fool"},
		CreatedAt: time.Now().UTC(),
	}
	st.readings[legacy.ID] = legacy

	_, err := svc.GenerateInterpretation(context.Background(), legacy.ID)
	assert.ErrorIs(t, err, generation.ErrInvalidRequest)
	assert.Empty(t, in.requests)
}

func TestGenerateInterpretationBackendFailure(t *testing.T) {
	t.Parallel()

	st := newFakeReadingStore()
	in := &fakeInterpreter{err: generation.ErrTimeout}
	svc := newTestReadingService(t, st, in)

	created, err := svc.CreateReading(context.Background(), nil, domain.CategoryGeneral, serviceCards())
	require.NoError(t, err)

	_, err = svc.GenerateInterpretation(context.Background(), created.ID)
	assert.ErrorIs(t, err, generation.ErrTimeout)

	// The stored reading stays uninterpreted.
	assert.Nil(t, st.readings[created.ID].AIInterpretation)
}

func TestGenerateInterpretationPersistFailure(t *testing.T) {
	t.Parallel()

	st := newFakeReadingStore()
	in := &fakeInterpreter{result: parsedResult()}
	svc := newTestReadingService(t, st, in)

	created, err := svc.CreateReading(context.Background(), nil, domain.CategoryGeneral, serviceCards())
	require.NoError(t, err)

	st.updateErr = errors.New("disk full")
	_, err = svc.GenerateInterpretation(context.Background(), created.ID)
	assert.ErrorContains(t, err, "disk full")
}

func TestInterpretCards(t *testing.T) {
	t.Parallel()

	in := &fakeInterpreter{result: parsedResult()}
	svc := newTestReadingService(t, newFakeReadingStore(), in)

	result, err := svc.InterpretCards(context.Background(), domain.CategoryLove, serviceCards())
	require.NoError(t, err)
	assert.Equal(t, generation.SourceParsed, result.Source)

	require.Len(t, in.requests, 1)
	assert.Equal(t, domain.CategoryLove, in.requests[0].Category)
}

func TestInterpretCardsValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category domain.Category
		cards    []domain.DrawnCard
	}{
		{
			name:     "unknown category",
			category: "fortune",
			cards:    serviceCards(),
		},
		{
			name:     "too few cards",
			category: domain.CategoryGeneral,
			cards:    serviceCards()[:2],
		},
		{
			name:     "duplicate card",
			category: domain.CategoryGeneral,
			cards: []domain.DrawnCard{
				{CardID: "the-fool"},
				{CardID: "the-fool"},
				{CardID: "the-star"},
			},
		},
		{
			name:     "unknown card",
			category: domain.CategoryGeneral,
			cards: []domain.DrawnCard{
				{CardID: "the-fool"},
				{CardID: "the-joker"},
				{CardID: "the-star"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := &fakeInterpreter{result: parsedResult()}
			svc := newTestReadingService(t, newFakeReadingStore(), in)

			_, err := svc.InterpretCards(context.Background(), tc.category, tc.cards)
			assert.ErrorIs(t, err, generation.ErrInvalidRequest)
			assert.Empty(t, in.requests)
		})
	}
}
