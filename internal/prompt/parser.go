package prompt

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
)

// errNoJSON signals that no decodable JSON object was found in the reply.
var errNoJSON = errors.New("no JSON object in model response")

// ParseResponse turns raw model output into a structurally valid
// interpretation. It tries a direct decode, then the first-to-last-brace
// substring, and finally synthesizes a fallback from the raw text and the
// per-card base meanings. It never fails: the returned source tags which
// path produced the result.
func ParseResponse(text string, cards []generation.CardContext) (*domain.Interpretation, generation.Source) {
	parsed, err := decodeInterpretation(text)
	if err != nil {
		return Synthesize(text, cards), generation.SourceFallback
	}

	normalize(parsed, cards)
	return parsed, generation.SourceParsed
}

// decodeInterpretation attempts a strict decode of the reply, then of the
// brace-delimited substring (models often wrap JSON in prose or code
// fences).
func decodeInterpretation(text string) (*domain.Interpretation, error) {
	var in domain.Interpretation
	if err := json.Unmarshal([]byte(text), &in); err == nil {
		return &in, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errNoJSON
	}

	in = domain.Interpretation{}
	if err := json.Unmarshal([]byte(text[start:end+1]), &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// normalize patches holes in an otherwise decodable reply so callers always
// see the full shape: one entry per drawn card, in draw order, and non-empty
// combination text. Cards the model skipped fall back to their base meaning.
func normalize(in *domain.Interpretation, cards []generation.CardContext) {
	if len(in.IndividualCards) != len(cards) {
		byID := make(map[string]domain.CardInterpretation, len(in.IndividualCards))
		for _, ci := range in.IndividualCards {
			byID[ci.CardID] = ci
		}

		merged := baseCardInterpretations(cards)
		for i, card := range cards {
			if ci, ok := byID[card.CardID]; ok && ci.Interpretation != "" {
				merged[i] = ci
			}
		}
		in.IndividualCards = merged
	}
	if in.Combination.Summary == "" {
		in.Combination.Summary = defaultSummary
	}
	if in.Combination.Detailed == "" {
		in.Combination.Detailed = defaultDetailed
	}
}
