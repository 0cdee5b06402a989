// Package prompt builds the language-model prompt for a reading and turns
// the model's reply back into a structured interpretation, degrading to a
// synthesized fallback when the reply is not usable JSON.
package prompt

import (
	"fmt"
	"strings"

	"github.com/bkjNprosoft/tarot-2026/internal/generation"
)

// SystemInstruction frames the model as a 2026 tarot reader and mandates
// the JSON response shape, plain-text fields, and the two music
// recommendations for the combination section.
const SystemInstruction = `You are an expert tarot card reader specializing in interpreting tarot cards for the year 2026.
Your task is to provide meaningful interpretations for individual tarot cards and their combinations.

When interpreting cards:
1. Consider the traditional meanings of each card
2. Relate the interpretation to the year 2026 and new beginnings
3. Provide practical and actionable insights
4. For combinations, explain how the cards interact and complement each other
5. Be positive but realistic in your interpretations
6. Write in Korean language
7. IMPORTANT: Use plain text only. Do NOT use any markdown formatting such as **bold**, *italic*, # headers, or any other markdown syntax. Write in natural, flowing Korean text without any special formatting characters.
8. Recommend music that matches the energy and meaning of the reading. For the combination section only, suggest exactly 2 songs: 1 Korean song and 1 global/international song. Format as "가수명 - 곡명" for Korean songs and "Artist - Song Title" for global songs.

Format your response as JSON with the following structure:
{
  "individualCards": [
    {
      "cardId": "card-id",
      "cardName": "Card Name",
      "interpretation": "Detailed interpretation for this card in the context of 2026 (plain text only, no markdown)"
    }
  ],
  "combination": {
    "summary": "Overall meaning of the three cards together (plain text only, no markdown)",
    "detailed": "Detailed explanation of how these three cards work together and what they mean for 2026 (plain text only, no markdown)",
    "musicRecommendations": [
      {
        "title": "가수명 - 곡명",
        "youtubeSearchUrl": "https://www.youtube.com/results?search_query=가수명+곡명",
        "type": "korean"
      },
      {
        "title": "Artist - Song Title",
        "youtubeSearchUrl": "https://www.youtube.com/results?search_query=Artist+Song+Title",
        "type": "global"
      }
    ]
  }
}`

// BuildInterpretationPrompt renders the user prompt for one reading: the
// category lens plus each drawn card's localized name, orientation tag,
// keywords, and catalog base meaning.
func BuildInterpretationPrompt(categoryTitle string, cards []generation.CardContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "다음 %d장의 타로 카드에 대해 %s 관점에서 해석해주세요:\n", len(cards), categoryTitle)

	for i, card := range cards {
		reversedTag := ""
		if card.Reversed {
			reversedTag = " [역방향]"
		}
		fmt.Fprintf(&b, "\n카드 %d: %s (%s)%s\n", i+1, card.LocalizedName, card.Name, reversedTag)
		fmt.Fprintf(&b, "키워드: %s\n", strings.Join(card.Keywords, ", "))
		fmt.Fprintf(&b, "기본 해석: %s\n", card.BaseMeaning)
	}

	fmt.Fprintf(&b,
		"\n위 %d장의 카드를 %s 관점에서 해석해주세요. 각 카드의 개별 의미와 %d장이 함께 나타낼 때의 조합된 의미를 제공해주세요. "+
			"[역방향]으로 표시된 카드는 역위(Reversed) 의미로 해석하고, 표시되지 않은 카드는 정위(Upright) 의미로 해석해주세요.",
		len(cards), categoryTitle, len(cards))

	return b.String()
}
