package domain

// Arcana is the card family a tarot card belongs to.
type Arcana string

const (
	ArcanaMajor Arcana = "major"
	ArcanaMinor Arcana = "minor"
)

// Orientation is the upright or reversed state of a drawn card.
type Orientation string

const (
	OrientationUpright  Orientation = "upright"
	OrientationReversed Orientation = "reversed"
)

// Meanings holds the interpretation text for one orientation of a card.
// Category-specific text is optional; General is the required fallback.
type Meanings struct {
	General    string
	Categories map[Category]string
}

// For returns the interpretation text for the given category, falling back
// to the general text when no category-specific text exists.
func (m Meanings) For(category Category) string {
	if text, ok := m.Categories[category]; ok && text != "" {
		return text
	}
	return m.General
}

// Card is an immutable catalog entry for a single tarot card.
type Card struct {
	ID            string
	Name          string
	LocalizedName string
	Arcana        Arcana
	Suit          string
	Keywords      []string
	Upright       Meanings
	Reversed      Meanings
}

// Meaning returns the interpretation text for the card in the given
// orientation and category.
func (c *Card) Meaning(reversed bool, category Category) string {
	if reversed {
		return c.Reversed.For(category)
	}
	return c.Upright.For(category)
}

// DrawnCard is a single card selection within a reading: which card was
// picked and whether it came out reversed. Orientation is decided once at
// draw time and fixed for the life of the reading.
type DrawnCard struct {
	CardID   string `json:"cardId"`
	Reversed bool   `json:"reversed"`
}
