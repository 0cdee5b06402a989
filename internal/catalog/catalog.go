// Package catalog holds the static tarot card catalog. The deck is embedded
// at build time and parsed once at construction; the resulting Catalog is
// immutable and safe for concurrent readers.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
)

//go:embed deck.toml
var deckTOML []byte

// deckConfig mirrors the TOML deck file layout.
type deckConfig struct {
	Deck struct {
		ID      string `toml:"id"`
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"deck"`
	Cards []cardConfig `toml:"cards"`
}

type cardConfig struct {
	ID            string            `toml:"id"`
	Name          string            `toml:"name"`
	LocalizedName string            `toml:"localized_name"`
	Arcana        string            `toml:"arcana"`
	Suit          string            `toml:"suit"`
	Keywords      []string          `toml:"keywords"`
	Upright       map[string]string `toml:"upright"`
	Reversed      map[string]string `toml:"reversed"`
}

// Catalog is the fixed set of cards available to the draw engine. Card order
// is the deck file order and is stable across calls; it is the sampling
// population for draws.
type Catalog struct {
	cards []*domain.Card
	byID  map[string]*domain.Card
}

// New parses the embedded deck and builds the catalog. Intended to be called
// once by the application entry point and injected from there.
func New() (*Catalog, error) {
	return load(deckTOML)
}

func load(raw []byte) (*Catalog, error) {
	var cfg deckConfig
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse deck file: %w", err)
	}

	if len(cfg.Cards) == 0 {
		return nil, fmt.Errorf("deck %q contains no cards", cfg.Deck.ID)
	}

	c := &Catalog{
		cards: make([]*domain.Card, 0, len(cfg.Cards)),
		byID:  make(map[string]*domain.Card, len(cfg.Cards)),
	}

	for _, cc := range cfg.Cards {
		if cc.ID == "" {
			return nil, fmt.Errorf("deck %q contains a card without an id", cfg.Deck.ID)
		}
		if _, dup := c.byID[cc.ID]; dup {
			return nil, fmt.Errorf("deck %q contains duplicate card id %q", cfg.Deck.ID, cc.ID)
		}

		upright, err := buildMeanings(cc.ID, "upright", cc.Upright)
		if err != nil {
			return nil, err
		}
		reversed, err := buildMeanings(cc.ID, "reversed", cc.Reversed)
		if err != nil {
			return nil, err
		}

		card := &domain.Card{
			ID:            cc.ID,
			Name:          cc.Name,
			LocalizedName: cc.LocalizedName,
			Arcana:        domain.Arcana(cc.Arcana),
			Suit:          cc.Suit,
			Keywords:      cc.Keywords,
			Upright:       upright,
			Reversed:      reversed,
		}

		c.cards = append(c.cards, card)
		c.byID[card.ID] = card
	}

	return c, nil
}

// buildMeanings splits the flat TOML orientation table into the required
// general text and the optional per-category texts. Unknown category keys
// are rejected so typos in the deck file fail loudly at startup.
func buildMeanings(cardID, orientation string, texts map[string]string) (domain.Meanings, error) {
	general, ok := texts["general"]
	if !ok || general == "" {
		return domain.Meanings{}, fmt.Errorf(
			"card %q is missing the %s general meaning", cardID, orientation)
	}

	m := domain.Meanings{General: general}
	for key, text := range texts {
		if key == "general" {
			continue
		}
		category, err := domain.ParseCategory(key)
		if err != nil {
			return domain.Meanings{}, fmt.Errorf(
				"card %q %s meaning has unknown category %q", cardID, orientation, key)
		}
		if m.Categories == nil {
			m.Categories = make(map[domain.Category]string)
		}
		m.Categories[category] = text
	}

	return m, nil
}

// CardByID looks up a card by its slug.
func (c *Catalog) CardByID(id string) (*domain.Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Cards returns all cards in stable deck order.
func (c *Catalog) Cards() []*domain.Card {
	return c.cards
}

// Size returns the number of cards in the catalog.
func (c *Catalog) Size() int {
	return len(c.cards)
}
