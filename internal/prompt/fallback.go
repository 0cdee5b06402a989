package prompt

import (
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
)

const (
	// summaryRuneLimit bounds the summary synthesized from raw model text.
	summaryRuneLimit = 200

	defaultSummary  = "3장의 카드가 함께 나타내는 의미"
	defaultDetailed = "AI 해석을 생성했습니다."
)

// Synthesize builds a minimal valid interpretation when the model reply is
// not usable JSON: the raw text becomes the detailed explanation, a
// truncated prefix the summary, and each card falls back to its catalog
// base meaning.
func Synthesize(text string, cards []generation.CardContext) *domain.Interpretation {
	summary := truncateRunes(text, summaryRuneLimit)
	if summary == "" {
		summary = defaultSummary
	}

	detailed := text
	if detailed == "" {
		detailed = defaultDetailed
	}

	return &domain.Interpretation{
		IndividualCards: baseCardInterpretations(cards),
		Combination: domain.Combination{
			Summary:  summary,
			Detailed: detailed,
		},
	}
}

// baseCardInterpretations maps the drawn cards to their catalog base
// meanings, the same grounding text the prompt was built from.
func baseCardInterpretations(cards []generation.CardContext) []domain.CardInterpretation {
	out := make([]domain.CardInterpretation, len(cards))
	for i, card := range cards {
		out[i] = domain.CardInterpretation{
			CardID:         card.CardID,
			CardName:       card.LocalizedName,
			Interpretation: card.BaseMeaning,
		}
	}
	return out
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
