package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeCards() []DrawnCard {
	return []DrawnCard{
		{CardID: "the-fool"},
		{CardID: "the-magician", Reversed: true},
		{CardID: "the-star"},
	}
}

func TestNewReading(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	reading, err := NewReading(&userID, CategoryLove, threeCards())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, reading.ID)
	assert.Equal(t, &userID, reading.UserID)
	assert.Equal(t, CategoryLove, reading.Category)
	assert.Equal(t, []string{"the-fool", "the-magician", "the-star"}, reading.Cards)
	assert.Equal(t, []bool{false, true, false}, reading.CardOrientations)
	assert.False(t, reading.CreatedAt.IsZero())
	assert.Nil(t, reading.AIInterpretation)
}

func TestNewReadingRequiresThreeCards(t *testing.T) {
	t.Parallel()

	_, err := NewReading(nil, CategoryGeneral, threeCards()[:2])
	assert.ErrorIs(t, err, ErrReadingCardCount)

	four := append(threeCards(), DrawnCard{CardID: "the-sun"})
	_, err = NewReading(nil, CategoryGeneral, four)
	assert.ErrorIs(t, err, ErrReadingCardCount)
}

func TestReadingValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Reading {
		return &Reading{
			ID:               uuid.New(),
			Category:         CategoryGeneral,
			Cards:            []string{"the-fool", "the-star"},
			CardOrientations: []bool{false, true},
			CreatedAt:        time.Now().UTC(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Reading)
		wantErr error
	}{
		{
			name:   "valid two-card record",
			mutate: func(r *Reading) {},
		},
		{
			name: "legacy single card without orientations",
			mutate: func(r *Reading) {
				r.Cards = []string{"the-fool"}
				r.CardOrientations = nil
			},
		},
		{
			name:    "nil id",
			mutate:  func(r *Reading) { r.ID = uuid.Nil },
			wantErr: ErrReadingIDEmpty,
		},
		{
			name:    "bad category",
			mutate:  func(r *Reading) { r.Category = "fortune" },
			wantErr: ErrInvalidCategory,
		},
		{
			name: "no cards",
			mutate: func(r *Reading) {
				r.Cards = nil
				r.CardOrientations = nil
			},
			wantErr: ErrReadingCardCount,
		},
		{
			name: "too many cards",
			mutate: func(r *Reading) {
				r.Cards = []string{"a", "b", "c", "d"}
				r.CardOrientations = []bool{false, false, false, false}
			},
			wantErr: ErrReadingCardCount,
		},
		{
			name: "duplicate card",
			mutate: func(r *Reading) {
				r.Cards = []string{"the-fool", "the-fool"}
			},
			wantErr: ErrReadingDuplicateCard,
		},
		{
			name: "orientation length mismatch",
			mutate: func(r *Reading) {
				r.CardOrientations = []bool{true}
			},
			wantErr: ErrReadingOrientationMismatch,
		},
		{
			name:    "zero created at",
			mutate:  func(r *Reading) { r.CreatedAt = time.Time{} },
			wantErr: ErrReadingCreatedAtZero,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reading := valid()
			tc.mutate(reading)

			err := reading.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestDrawnReconstructsOrientations(t *testing.T) {
	t.Parallel()

	reading, err := NewReading(nil, CategoryGeneral, threeCards())
	require.NoError(t, err)
	assert.Equal(t, threeCards(), reading.Drawn())

	// Legacy records without an orientation list come back all upright.
	legacy := &Reading{
		ID:        uuid.New(),
		Category:  CategoryGeneral,
		Cards:     []string{"the-fool"},
		CreatedAt: time.Now().UTC(),
	}
	assert.Equal(t, []DrawnCard{{CardID: "the-fool"}}, legacy.Drawn())
}

func TestSetInterpretationOverwrites(t *testing.T) {
	t.Parallel()

	reading, err := NewReading(nil, CategoryGeneral, threeCards())
	require.NoError(t, err)

	first := &Interpretation{Combination: Combination{Summary: "one", Detailed: "one"}}
	second := &Interpretation{Combination: Combination{Summary: "two", Detailed: "two"}}

	t1 := time.Now().UTC()
	reading.SetInterpretation(first, t1)
	require.NotNil(t, reading.InterpretationGeneratedAt)

	t2 := t1.Add(time.Minute)
	reading.SetInterpretation(second, t2)
	assert.Equal(t, second, reading.AIInterpretation)
	assert.Equal(t, t2, *reading.InterpretationGeneratedAt)
}
