// Package session implements the interactive draw flow as a small state
// machine: shuffle, pick three cards one at a time, save, interpret. It
// exists for interactive front ends (the CLI) where the pacing delays and
// re-entrancy guards of the original flow matter.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/draw"
)

const (
	// shuffleDelay is how long a shuffle takes. It paces the interactive
	// flow; the deck itself needs no time to shuffle.
	shuffleDelay = 2 * time.Second

	// interpretationWaitFloor is the minimum time the interpreting phase
	// lasts, even when the backend answers (or fails) faster.
	interpretationWaitFloor = 5 * time.Second
)

// State is the machine's current phase.
type State string

const (
	// StateSelecting accepts card picks. This is the initial state.
	StateSelecting State = "selecting"

	// StateShuffling means a shuffle is running.
	StateShuffling State = "shuffling"

	// StateSaving means the completed draw is being persisted.
	StateSaving State = "saving"

	// StateInterpreting means the AI interpretation is being generated.
	StateInterpreting State = "interpreting"

	// StateDone means the reading is saved; interpretation may or may not
	// be attached.
	StateDone State = "done"
)

var (
	// ErrBusy is returned when an operation arrives while a shuffle, save,
	// or interpretation is already running.
	ErrBusy = errors.New("session is busy")

	// ErrSelectionComplete is returned when picking a card after the
	// reading is already complete.
	ErrSelectionComplete = errors.New("selection already complete")
)

// ReadingPipeline is the slice of the reading service the session needs:
// persist a completed draw and attach an interpretation to it.
type ReadingPipeline interface {
	CreateReading(ctx context.Context, userID *uuid.UUID, category domain.Category, drawn []domain.DrawnCard) (*domain.Reading, error)
	GenerateInterpretation(ctx context.Context, id uuid.UUID) (*domain.Reading, error)
}

// Machine drives one reading session. Methods are serialized by an internal
// mutex; the pacing sleeps run with the lock held, which is exactly the
// re-entrancy guard the flow needs.
type Machine struct {
	mu       sync.Mutex
	engine   *draw.Engine
	pipeline ReadingPipeline
	category domain.Category
	userID   *uuid.UUID
	logger   *slog.Logger

	state    State
	selected []domain.DrawnCard
	reading  *domain.Reading

	// Injectable for testing.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewMachine creates a session for one category. userID may be nil for
// anonymous readings.
func NewMachine(
	engine *draw.Engine,
	pipeline ReadingPipeline,
	category domain.Category,
	userID *uuid.UUID,
	logger *slog.Logger,
) *Machine {
	if engine == nil {
		panic("engine cannot be nil")
	}
	if pipeline == nil {
		panic("pipeline cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Machine{
		engine:   engine,
		pipeline: pipeline,
		category: category,
		userID:   userID,
		logger:   logger.With(slog.String("component", "session")),
		state:    StateSelecting,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// State reports the machine's current phase.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Selected returns the cards picked so far, in pick order.
func (m *Machine) Selected() []domain.DrawnCard {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.DrawnCard, len(m.selected))
	copy(out, m.selected)
	return out
}

// Reading returns the persisted reading once the session is done, nil
// before that.
func (m *Machine) Reading() *domain.Reading {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reading
}

// StartShuffle clears any partial selection and reshuffles. It is rejected
// while a shuffle, save, or interpretation is running, and after the
// session is done.
func (m *Machine) StartShuffle(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateSelecting {
		return ErrBusy
	}

	m.state = StateShuffling
	m.sleep(shuffleDelay)
	m.selected = nil
	m.state = StateSelecting

	m.logger.DebugContext(ctx, "deck shuffled",
		slog.String("category", string(m.category)))
	return nil
}

// SelectNext picks the next card. The third pick triggers the save and
// interpretation pipeline before returning. A failed save clears the whole
// selection so the draw restarts from scratch; a failed interpretation is
// logged and swallowed, the reading still completes.
func (m *Machine) SelectNext(ctx context.Context) (domain.DrawnCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateSelecting:
	case StateDone:
		return domain.DrawnCard{}, ErrSelectionComplete
	default:
		return domain.DrawnCard{}, ErrBusy
	}

	picked := make(map[string]struct{}, len(m.selected))
	for _, d := range m.selected {
		picked[d.CardID] = struct{}{}
	}

	card, err := m.engine.Draw(picked)
	if err != nil {
		return domain.DrawnCard{}, err
	}
	m.selected = append(m.selected, card)

	if len(m.selected) < domain.ReadingCardCount {
		return card, nil
	}

	if err := m.finalize(ctx); err != nil {
		// Abandon the whole selection; the draw restarts from scratch.
		m.selected = nil
		m.state = StateSelecting
		return domain.DrawnCard{}, err
	}

	return card, nil
}

// Reset abandons the session and starts over. It is rejected while busy.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateSelecting, StateDone:
	default:
		return ErrBusy
	}

	m.selected = nil
	m.reading = nil
	m.state = StateSelecting
	return nil
}

// finalize persists the completed draw, then generates the interpretation.
// The interpreting phase lasts at least interpretationWaitFloor.
func (m *Machine) finalize(ctx context.Context) error {
	m.state = StateSaving

	reading, err := m.pipeline.CreateReading(ctx, m.userID, m.category, m.selected)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to save reading",
			slog.String("error", err.Error()))
		return err
	}
	m.reading = reading

	m.state = StateInterpreting
	start := m.now()

	updated, err := m.pipeline.GenerateInterpretation(ctx, reading.ID)
	if err != nil {
		// The reading stands without an interpretation.
		m.logger.WarnContext(ctx, "interpretation failed, keeping reading",
			slog.String("reading_id", reading.ID.String()),
			slog.String("error", err.Error()))
	} else {
		m.reading = updated
	}

	if elapsed := m.now().Sub(start); elapsed < interpretationWaitFloor {
		m.sleep(interpretationWaitFloor - elapsed)
	}

	m.state = StateDone
	return nil
}
