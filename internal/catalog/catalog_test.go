package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
)

func TestNewLoadsEmbeddedDeck(t *testing.T) {
	t.Parallel()

	cat, err := New()
	require.NoError(t, err)

	assert.Equal(t, 22, cat.Size())

	for _, card := range cat.Cards() {
		assert.NotEmpty(t, card.ID)
		assert.NotEmpty(t, card.Name)
		assert.NotEmpty(t, card.LocalizedName, "card %s", card.ID)
		assert.Equal(t, domain.ArcanaMajor, card.Arcana, "card %s", card.ID)
		assert.NotEmpty(t, card.Keywords, "card %s", card.ID)
		assert.NotEmpty(t, card.Upright.General, "card %s", card.ID)
		assert.NotEmpty(t, card.Reversed.General, "card %s", card.ID)
	}
}

func TestCardByID(t *testing.T) {
	t.Parallel()

	cat, err := New()
	require.NoError(t, err)

	fool, ok := cat.CardByID("the-fool")
	require.True(t, ok)
	assert.Equal(t, "The Fool", fool.Name)

	_, ok = cat.CardByID("the-thirteenth-hour")
	assert.False(t, ok)
}

func TestCardsOrderIsStable(t *testing.T) {
	t.Parallel()

	cat, err := New()
	require.NoError(t, err)

	first := cat.Cards()
	second := cat.Cards()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
	assert.Equal(t, "the-fool", first[0].ID)
	assert.Equal(t, "the-world", first[len(first)-1].ID)
}

func TestLoadRejectsBadDecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		toml string
	}{
		{
			name: "empty deck",
			toml: `[deck]
id = "empty"`,
		},
		{
			name: "missing card id",
			toml: `[[cards]]
name = "The Fool"
[cards.upright]
general = "x"
[cards.reversed]
general = "y"`,
		},
		{
			name: "duplicate card id",
			toml: `[[cards]]
id = "the-fool"
[cards.upright]
general = "x"
[cards.reversed]
general = "y"
[[cards]]
id = "the-fool"
[cards.upright]
general = "x"
[cards.reversed]
general = "y"`,
		},
		{
			name: "missing general meaning",
			toml: `[[cards]]
id = "the-fool"
[cards.upright]
love = "x"
[cards.reversed]
general = "y"`,
		},
		{
			name: "unknown category key",
			toml: `[[cards]]
id = "the-fool"
[cards.upright]
general = "x"
fortune = "z"
[cards.reversed]
general = "y"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := load([]byte(tc.toml))
			assert.Error(t, err)
		})
	}
}

func TestCategoryMeaningFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	cat, err := New()
	require.NoError(t, err)

	for _, card := range cat.Cards() {
		for _, category := range domain.Categories() {
			assert.NotEmpty(t, card.Meaning(false, category),
				"card %s upright %s", card.ID, category)
			assert.NotEmpty(t, card.Meaning(true, category),
				"card %s reversed %s", card.ID, category)
		}
	}
}
