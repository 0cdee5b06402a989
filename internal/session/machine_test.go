package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkjNprosoft/tarot-2026/internal/catalog"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/draw"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
	"github.com/bkjNprosoft/tarot-2026/internal/store"
)

// fakePipeline records pipeline calls and fails on demand.
type fakePipeline struct {
	createErr    error
	interpretErr error
	created      []*domain.Reading
	interpreted  []uuid.UUID
}

func (f *fakePipeline) CreateReading(
	_ context.Context,
	userID *uuid.UUID,
	category domain.Category,
	drawn []domain.DrawnCard,
) (*domain.Reading, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	reading, err := domain.NewReading(userID, category, drawn)
	if err != nil {
		return nil, err
	}
	f.created = append(f.created, reading)
	return reading, nil
}

func (f *fakePipeline) GenerateInterpretation(_ context.Context, id uuid.UUID) (*domain.Reading, error) {
	if f.interpretErr != nil {
		return nil, f.interpretErr
	}
	f.interpreted = append(f.interpreted, id)
	for _, r := range f.created {
		if r.ID == id {
			r.SetInterpretation(&domain.Interpretation{
				IndividualCards: []domain.CardInterpretation{{CardID: r.Cards[0], Interpretation: "x"}},
				Combination:     domain.Combination{Summary: "s", Detailed: "d"},
			}, time.Now().UTC())
			return r, nil
		}
	}
	return nil, store.ErrReadingNotFound
}

func newTestMachine(t *testing.T, pipeline ReadingPipeline) (*Machine, *[]time.Duration) {
	t.Helper()

	cat, err := catalog.New()
	require.NoError(t, err)

	engine := draw.NewEngine(cat, rand.New(rand.NewSource(7)))
	m := NewMachine(engine, pipeline, domain.CategoryGeneral, nil, slog.Default())

	var slept []time.Duration
	m.sleep = func(d time.Duration) { slept = append(slept, d) }
	m.now = time.Now

	return m, &slept
}

func TestShuffleClearsSelection(t *testing.T) {
	t.Parallel()

	m, slept := newTestMachine(t, &fakePipeline{})
	ctx := context.Background()

	_, err := m.SelectNext(ctx)
	require.NoError(t, err)
	require.Len(t, m.Selected(), 1)

	require.NoError(t, m.StartShuffle(ctx))
	assert.Empty(t, m.Selected())
	assert.Equal(t, StateSelecting, m.State())
	assert.Contains(t, *slept, shuffleDelay)
}

func TestSelectionWithoutDuplicates(t *testing.T) {
	t.Parallel()

	m, _ := newTestMachine(t, &fakePipeline{})
	ctx := context.Background()

	seen := map[string]struct{}{}
	for i := 0; i < domain.ReadingCardCount; i++ {
		card, err := m.SelectNext(ctx)
		require.NoError(t, err)
		_, dup := seen[card.CardID]
		assert.False(t, dup, "card %s drawn twice", card.CardID)
		seen[card.CardID] = struct{}{}
	}
}

func TestThirdPickCompletesReading(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{}
	m, slept := newTestMachine(t, pipeline)
	ctx := context.Background()

	for i := 0; i < domain.ReadingCardCount; i++ {
		_, err := m.SelectNext(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, StateDone, m.State())
	require.Len(t, pipeline.created, 1)
	require.Len(t, pipeline.interpreted, 1)

	reading := m.Reading()
	require.NotNil(t, reading)
	assert.NotNil(t, reading.AIInterpretation)

	// The interpreting phase is padded up to its floor when the backend
	// answers instantly.
	require.NotEmpty(t, *slept)
	last := (*slept)[len(*slept)-1]
	assert.LessOrEqual(t, last, interpretationWaitFloor)
	assert.Greater(t, last, time.Duration(0))

	_, err := m.SelectNext(ctx)
	assert.ErrorIs(t, err, ErrSelectionComplete)
}

func TestSaveFailureClearsSelection(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{
		createErr: fmt.Errorf("%w: disk full", store.ErrPersistenceFailure),
	}
	m, _ := newTestMachine(t, pipeline)
	ctx := context.Background()

	_, err := m.SelectNext(ctx)
	require.NoError(t, err)
	_, err = m.SelectNext(ctx)
	require.NoError(t, err)

	_, err = m.SelectNext(ctx)
	require.ErrorIs(t, err, store.ErrPersistenceFailure)

	// The whole selection is gone, not just the third pick; the draw
	// restarts from scratch.
	assert.Empty(t, m.Selected())
	assert.Equal(t, StateSelecting, m.State())
	assert.Nil(t, m.Reading())

	pipeline.createErr = nil
	for i := 0; i < domain.ReadingCardCount; i++ {
		_, err = m.SelectNext(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, StateDone, m.State())
	require.Len(t, pipeline.created, 1)
	assert.Len(t, pipeline.created[0].Cards, domain.ReadingCardCount)
}

func TestInterpretationFailureStillCompletes(t *testing.T) {
	t.Parallel()

	pipeline := &fakePipeline{interpretErr: generation.ErrUpstream}
	m, _ := newTestMachine(t, pipeline)
	ctx := context.Background()

	for i := 0; i < domain.ReadingCardCount; i++ {
		_, err := m.SelectNext(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, StateDone, m.State())
	reading := m.Reading()
	require.NotNil(t, reading)
	assert.Nil(t, reading.AIInterpretation)
}

func TestResetGuards(t *testing.T) {
	t.Parallel()

	m, _ := newTestMachine(t, &fakePipeline{})
	ctx := context.Background()

	for i := 0; i < domain.ReadingCardCount; i++ {
		_, err := m.SelectNext(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, StateDone, m.State())

	require.NoError(t, m.Reset())
	assert.Equal(t, StateSelecting, m.State())
	assert.Empty(t, m.Selected())
	assert.Nil(t, m.Reading())
}
