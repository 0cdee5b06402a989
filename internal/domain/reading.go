package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReadingCardCount is the number of cards drawn in the canonical flow.
const ReadingCardCount = 3

// Reading validation errors.
var (
	// ErrReadingIDEmpty is returned when a reading ID is empty or nil.
	ErrReadingIDEmpty = errors.New("reading ID cannot be empty")

	// ErrReadingCardCount is returned when a reading holds fewer than one or
	// more than three cards.
	ErrReadingCardCount = errors.New("reading must contain between 1 and 3 cards")

	// ErrReadingDuplicateCard is returned when the same card appears twice in
	// one reading. Drawing is without replacement.
	ErrReadingDuplicateCard = errors.New("reading cannot contain the same card twice")

	// ErrReadingOrientationMismatch is returned when the orientation list is
	// present but not parallel to the card list.
	ErrReadingOrientationMismatch = errors.New("card orientations must match the card list")

	// ErrReadingCreatedAtZero is returned when a reading has no creation timestamp.
	ErrReadingCreatedAtZero = errors.New("reading creation time cannot be zero")
)

// Reading is one persisted draw session: the chosen category, the cards in
// draw order, their orientations, and the optional AI interpretation. All
// fields are immutable after creation except AIInterpretation and
// InterpretationGeneratedAt, which are set at most once by a successful
// interpretation call (last write wins on retry).
type Reading struct {
	ID                        uuid.UUID       `json:"id"`
	UserID                    *uuid.UUID      `json:"userId,omitempty"`
	Category                  Category        `json:"category"`
	Cards                     []string        `json:"cards"`
	CardOrientations          []bool          `json:"cardOrientations,omitempty"`
	CreatedAt                 time.Time       `json:"createdAt"`
	AIInterpretation          *Interpretation `json:"aiInterpretation,omitempty"`
	InterpretationGeneratedAt *time.Time      `json:"interpretationGeneratedAt,omitempty"`
}

// NewReading creates a Reading from a completed 3-card draw. It generates a
// new UUID and stamps the creation time in UTC. The drawn cards keep their
// draw order. Returns an error if validation fails.
func NewReading(userID *uuid.UUID, category Category, drawn []DrawnCard) (*Reading, error) {
	if len(drawn) != ReadingCardCount {
		return nil, fmt.Errorf("%w: got %d", ErrReadingCardCount, len(drawn))
	}

	cards := make([]string, len(drawn))
	orientations := make([]bool, len(drawn))
	for i, d := range drawn {
		cards[i] = d.CardID
		orientations[i] = d.Reversed
	}

	reading := &Reading{
		ID:               uuid.New(),
		UserID:           userID,
		Category:         category,
		Cards:            cards,
		CardOrientations: orientations,
		CreatedAt:        time.Now().UTC(),
	}

	if err := reading.Validate(); err != nil {
		return nil, err
	}

	return reading, nil
}

// Validate checks the Reading invariants. Legacy single-card records (and
// records without an orientation list) are accepted: they exist for read
// paths only, creation always goes through NewReading.
func (r *Reading) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReadingIDEmpty
	}

	if !r.Category.Valid() {
		return ErrInvalidCategory
	}

	if len(r.Cards) < 1 || len(r.Cards) > ReadingCardCount {
		return fmt.Errorf("%w: got %d", ErrReadingCardCount, len(r.Cards))
	}

	seen := make(map[string]struct{}, len(r.Cards))
	for _, id := range r.Cards {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrReadingDuplicateCard, id)
		}
		seen[id] = struct{}{}
	}

	if len(r.CardOrientations) != 0 && len(r.CardOrientations) != len(r.Cards) {
		return ErrReadingOrientationMismatch
	}

	if r.CreatedAt.IsZero() {
		return ErrReadingCreatedAtZero
	}

	return nil
}

// Drawn reconstructs the ordered DrawnCard list. Legacy records without an
// orientation list are treated as all upright.
func (r *Reading) Drawn() []DrawnCard {
	drawn := make([]DrawnCard, len(r.Cards))
	for i, id := range r.Cards {
		reversed := false
		if i < len(r.CardOrientations) {
			reversed = r.CardOrientations[i]
		}
		drawn[i] = DrawnCard{CardID: id, Reversed: reversed}
	}
	return drawn
}

// SetInterpretation attaches an AI interpretation to the reading. Later
// calls overwrite earlier ones; every other field stays untouched.
func (r *Reading) SetInterpretation(in *Interpretation, generatedAt time.Time) {
	r.AIInterpretation = in
	at := generatedAt.UTC()
	r.InterpretationGeneratedAt = &at
}
