// Package gemini implements generation.Interpreter on top of the Google
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/bkjNprosoft/tarot-2026/internal/config"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
	"github.com/bkjNprosoft/tarot-2026/internal/platform/logger"
	"github.com/bkjNprosoft/tarot-2026/internal/prompt"
)

// callTimeout bounds the single outbound generation call. The service layer
// applies its own slightly wider deadline around the whole operation.
const callTimeout = 30 * time.Second

// generateFunc is the one seam into the genai SDK, swappable in tests.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Interpreter calls the Gemini API to interpret a completed reading.
// A missing API key is not a construction error: the client is created
// lazily so the rest of the server works without credentials and only the
// interpretation endpoint reports ErrMissingCredentials.
type Interpreter struct {
	apiKey    string
	modelName string
	logger    *slog.Logger
	generate  generateFunc
}

var _ generation.Interpreter = (*Interpreter)(nil)

// NewInterpreter creates a Gemini-backed interpreter from configuration.
func NewInterpreter(cfg config.LLMConfig, log *slog.Logger) *Interpreter {
	if log == nil {
		log = slog.Default()
	}
	return &Interpreter{
		apiKey:    cfg.GeminiAPIKey,
		modelName: cfg.ModelName,
		logger:    log.With(slog.String("component", "gemini_interpreter")),
	}
}

// Interpret implements generation.Interpreter. The model call is bounded by
// callTimeout; parsing the reply never fails and degraded replies come back
// tagged SourceFallback.
func (i *Interpreter) Interpret(ctx context.Context, req generation.Request) (*generation.Result, error) {
	log := logger.FromContextOrDefault(ctx, i.logger)

	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if i.apiKey == "" {
		return nil, generation.ErrMissingCredentials
	}

	generate := i.generate
	if generate == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  i.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: creating client: %v", generation.ErrUpstream, err)
		}
		generate = client.Models.GenerateContent
	}

	userPrompt := prompt.BuildInterpretationPrompt(req.Category.Title(), req.Cards)

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	start := time.Now()
	resp, err := generate(callCtx,
		i.modelName,
		[]*genai.Content{{Parts: []*genai.Part{{Text: userPrompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: prompt.SystemInstruction}},
			},
		},
	)
	if err != nil {
		if callCtx.Err() != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			log.WarnContext(ctx, "interpretation call timed out",
				slog.String("model", i.modelName),
				slog.Duration("elapsed", time.Since(start)))
			return nil, fmt.Errorf("%w: %v", generation.ErrTimeout, err)
		}
		log.ErrorContext(ctx, "interpretation call failed",
			slog.String("model", i.modelName),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", generation.ErrUpstream, err)
	}

	text, err := responseText(resp)
	if err != nil {
		log.ErrorContext(ctx, "unusable interpretation response",
			slog.String("model", i.modelName),
			slog.String("error", err.Error()))
		return nil, err
	}

	interpretation, source := prompt.ParseResponse(text, req.Cards)

	log.InfoContext(ctx, "interpretation generated",
		slog.String("model", i.modelName),
		slog.String("category", string(req.Category)),
		slog.String("source", string(source)),
		slog.Duration("elapsed", time.Since(start)))

	return &generation.Result{Interpretation: interpretation, Source: source}, nil
}

func validateRequest(req generation.Request) error {
	if !req.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", generation.ErrInvalidRequest, req.Category)
	}
	if len(req.Cards) != domain.ReadingCardCount {
		return fmt.Errorf("%w: got %d cards, want %d",
			generation.ErrInvalidRequest, len(req.Cards), domain.ReadingCardCount)
	}
	for _, card := range req.Cards {
		if card.CardID == "" {
			return fmt.Errorf("%w: card with empty id", generation.ErrInvalidRequest)
		}
	}
	return nil
}

// responseText flattens the first candidate's parts into one string.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty response", generation.ErrUpstream)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: response contained no text", generation.ErrUpstream)
	}
	return text, nil
}
