package generation

import (
	"context"

	"github.com/bkjNprosoft/tarot-2026/internal/domain"
)

// CardContext is one drawn card with its interpretation grounding already
// resolved against the catalog: the orientation-aware, category-specific
// base meaning that seeds the prompt and the parse fallback.
type CardContext struct {
	CardID        string
	Name          string
	LocalizedName string
	Keywords      []string
	Reversed      bool
	BaseMeaning   string
}

// Request carries everything needed to generate an interpretation for one
// completed three-card reading.
type Request struct {
	Category domain.Category
	Cards    []CardContext
}

// Source tags how a Result was obtained from the model response.
type Source string

const (
	// SourceParsed means the model returned the mandated JSON shape and it
	// decoded cleanly (directly or from an extracted JSON substring).
	SourceParsed Source = "parsed"

	// SourceFallback means the response was not usable JSON and the
	// interpretation was synthesized from the raw text and base meanings.
	SourceFallback Source = "fallback"
)

// Result is a structurally valid interpretation together with its
// provenance. Interpret never hands back a raw, untyped model response.
type Result struct {
	Interpretation *domain.Interpretation
	Source         Source
}

// Interpreter generates an AI interpretation for a reading. Implementations
// make exactly one outbound call and perform no local mutation; persisting
// the result is the caller's job.
type Interpreter interface {
	// Interpret generates an interpretation for the given request. Once the
	// model has answered, parsing never fails: degraded responses come back
	// as a Result with SourceFallback. Errors are limited to the taxonomy in
	// errors.go.
	Interpret(ctx context.Context, req Request) (*Result, error)
}
