// Package draw implements card selection for a reading: uniform sampling
// without replacement over the card catalog, with a random orientation
// assigned at draw time.
package draw

import (
	"errors"
	"math/rand"

	"github.com/bkjNprosoft/tarot-2026/internal/catalog"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
)

const (
	// maxAttempts caps the rejection-sampling loop. Unreachable while the
	// catalog is larger than the selection count.
	maxAttempts = 100

	// reversedProbability is the chance a drawn card comes out reversed.
	reversedProbability = 0.30
)

// ErrSelectionExhausted is returned when the rejection-sampling loop fails
// to find an unselected card within the attempt cap.
var ErrSelectionExhausted = errors.New("card selection exhausted after too many attempts")

// Engine selects cards for a reading. It holds no selection state of its
// own; the caller accumulates drawn cards and passes them back in.
type Engine struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewEngine creates a draw engine over the given catalog. The RNG is
// injected so tests can seed it deterministically.
func NewEngine(cat *catalog.Catalog, rng *rand.Rand) *Engine {
	return &Engine{catalog: cat, rng: rng}
}

// Draw samples one card uniformly from the catalog, rejecting cards whose id
// is already in drawn, and assigns an orientation (reversed with probability
// 0.30). The result is fixed for the life of the reading.
func (e *Engine) Draw(drawn map[string]struct{}) (domain.DrawnCard, error) {
	cards := e.catalog.Cards()

	var picked *domain.Card
	for attempts := 0; ; attempts++ {
		if attempts >= maxAttempts {
			return domain.DrawnCard{}, ErrSelectionExhausted
		}
		candidate := cards[e.rng.Intn(len(cards))]
		if _, taken := drawn[candidate.ID]; !taken {
			picked = candidate
			break
		}
	}

	return domain.DrawnCard{
		CardID:   picked.ID,
		Reversed: e.rng.Float64() < reversedProbability,
	}, nil
}
