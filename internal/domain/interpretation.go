package domain

import "errors"

// MusicType distinguishes the regional and international recommendation in a
// combination reading.
type MusicType string

const (
	MusicTypeKorean MusicType = "korean"
	MusicTypeGlobal MusicType = "global"
)

// Interpretation validation errors.
var (
	// ErrInterpretationNoCards is returned when an interpretation carries no
	// per-card entries.
	ErrInterpretationNoCards = errors.New("interpretation must cover at least one card")

	// ErrInterpretationEmptyDetail is returned when the combination section
	// has no detailed text.
	ErrInterpretationEmptyDetail = errors.New("interpretation combination detail cannot be empty")
)

// MusicRecommendation is a song suggested for the energy of the combined
// reading, with a prebuilt YouTube search link.
type MusicRecommendation struct {
	Title            string    `json:"title"`
	YouTubeSearchURL string    `json:"youtubeSearchUrl"`
	Type             MusicType `json:"type"`
}

// CardInterpretation is the AI interpretation for one drawn card.
type CardInterpretation struct {
	CardID         string `json:"cardId"`
	CardName       string `json:"cardName"`
	Interpretation string `json:"interpretation"`
}

// Combination is the meaning of all drawn cards taken together.
type Combination struct {
	Summary              string                `json:"summary"`
	Detailed             string                `json:"detailed"`
	MusicRecommendations []MusicRecommendation `json:"musicRecommendations,omitempty"`
}

// Interpretation is the AI-generated reading text: one entry per drawn card
// plus the combined meaning. The JSON field names are the wire format shared
// with the generation backend and the persistence record.
type Interpretation struct {
	IndividualCards []CardInterpretation `json:"individualCards"`
	Combination     Combination          `json:"combination"`
}

// Validate checks that the interpretation is structurally usable: at least
// one per-card entry and a non-empty detailed text.
func (i *Interpretation) Validate() error {
	if len(i.IndividualCards) == 0 {
		return ErrInterpretationNoCards
	}
	if i.Combination.Detailed == "" {
		return ErrInterpretationEmptyDetail
	}
	return nil
}
