package gemini

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/bkjNprosoft/tarot-2026/internal/config"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/generation"
)

func testRequest() generation.Request {
	return generation.Request{
		Category: domain.CategoryLove,
		Cards: []generation.CardContext{
			{CardID: "the-fool", Name: "The Fool", LocalizedName: "바보", BaseMeaning: "새로운 시작"},
			{CardID: "the-magician", Name: "The Magician", LocalizedName: "마법사", BaseMeaning: "의지와 창조"},
			{CardID: "the-star", Name: "The Star", LocalizedName: "별", Reversed: true, BaseMeaning: "희망의 상실"},
		},
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func newTestInterpreter(generate generateFunc) *Interpreter {
	i := NewInterpreter(config.LLMConfig{
		GeminiAPIKey: "test-key",
		ModelName:    "gemini-2.5-flash-lite",
	}, slog.Default())
	i.generate = generate
	return i
}

func TestInterpretMissingCredentials(t *testing.T) {
	t.Parallel()

	i := NewInterpreter(config.LLMConfig{ModelName: "gemini-2.5-flash-lite"}, slog.Default())

	_, err := i.Interpret(context.Background(), testRequest())
	assert.ErrorIs(t, err, generation.ErrMissingCredentials)
}

func TestInterpretInvalidRequest(t *testing.T) {
	t.Parallel()

	i := newTestInterpreter(nil)

	tests := []struct {
		name   string
		mutate func(*generation.Request)
	}{
		{
			name:   "unknown category",
			mutate: func(r *generation.Request) { r.Category = "fortune" },
		},
		{
			name:   "too few cards",
			mutate: func(r *generation.Request) { r.Cards = r.Cards[:2] },
		},
		{
			name:   "empty card id",
			mutate: func(r *generation.Request) { r.Cards[0].CardID = "" },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := testRequest()
			tc.mutate(&req)

			_, err := i.Interpret(context.Background(), req)
			assert.ErrorIs(t, err, generation.ErrInvalidRequest)
		})
	}
}

func TestInterpretParsedResponse(t *testing.T) {
	t.Parallel()

	reply := `{
		"individualCards": [
			{"cardId": "the-fool", "cardName": "바보", "interpretation": "2026년의 새 출발"},
			{"cardId": "the-magician", "cardName": "마법사", "interpretation": "실행력"},
			{"cardId": "the-star", "cardName": "별", "interpretation": "회복"}
		],
		"combination": {
			"summary": "새 시작과 실행",
			"detailed": "세 카드가 함께 새로운 한 해의 추진력을 보여줍니다.",
			"musicRecommendations": [
				{"title": "아이유 - 밤편지", "youtubeSearchUrl": "https://www.youtube.com/results?search_query=아이유+밤편지", "type": "korean"},
				{"title": "Coldplay - Fix You", "youtubeSearchUrl": "https://www.youtube.com/results?search_query=Coldplay+Fix+You", "type": "global"}
			]
		}
	}`

	var gotModel string
	i := newTestInterpreter(func(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gotModel = model
		require.Len(t, contents, 1)
		require.NotNil(t, cfg.SystemInstruction)
		return textResponse(reply), nil
	})

	result, err := i.Interpret(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash-lite", gotModel)
	assert.Equal(t, generation.SourceParsed, result.Source)
	require.Len(t, result.Interpretation.IndividualCards, 3)
	assert.Equal(t, "새 시작과 실행", result.Interpretation.Combination.Summary)
	require.Len(t, result.Interpretation.Combination.MusicRecommendations, 2)
	assert.Equal(t, domain.MusicTypeKorean, result.Interpretation.Combination.MusicRecommendations[0].Type)
}

func TestInterpretFallbackOnProseResponse(t *testing.T) {
	t.Parallel()

	i := newTestInterpreter(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("올해는 새로운 시작의 해입니다. JSON 없이 산문으로만 답합니다."), nil
	})

	result, err := i.Interpret(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, generation.SourceFallback, result.Source)
	require.Len(t, result.Interpretation.IndividualCards, 3)
	assert.Equal(t, "바보", result.Interpretation.IndividualCards[0].CardName)
	assert.Equal(t, "새로운 시작", result.Interpretation.IndividualCards[0].Interpretation)
	assert.Contains(t, result.Interpretation.Combination.Detailed, "산문")
}

func TestInterpretUpstreamError(t *testing.T) {
	t.Parallel()

	i := newTestInterpreter(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("503 service unavailable")
	})

	_, err := i.Interpret(context.Background(), testRequest())
	assert.ErrorIs(t, err, generation.ErrUpstream)
}

func TestInterpretEmptyResponse(t *testing.T) {
	t.Parallel()

	i := newTestInterpreter(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return &genai.GenerateContentResponse{}, nil
	})

	_, err := i.Interpret(context.Background(), testRequest())
	assert.ErrorIs(t, err, generation.ErrUpstream)
}

func TestInterpretTimeout(t *testing.T) {
	t.Parallel()

	i := newTestInterpreter(func(ctx context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := i.Interpret(ctx, testRequest())
	assert.ErrorIs(t, err, generation.ErrTimeout)
}
