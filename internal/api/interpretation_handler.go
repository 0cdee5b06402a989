package api

import (
	"net/http"

	"github.com/bkjNprosoft/tarot-2026/internal/api/shared"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/service"
)

// InterpretationHandler handles the stateless interpretation endpoint:
// interpret a card selection without storing a reading.
type InterpretationHandler struct {
	readingService *service.ReadingService
}

// NewInterpretationHandler creates a new InterpretationHandler.
func NewInterpretationHandler(readingService *service.ReadingService) *InterpretationHandler {
	return &InterpretationHandler{readingService: readingService}
}

// Interpret handles POST /api/tarot-interpretation requests.
func (h *InterpretationHandler) Interpret(w http.ResponseWriter, r *http.Request) {
	var req InterpretationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err.Error())
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown category", req.Category)
		return
	}

	drawn := make([]domain.DrawnCard, len(req.Cards))
	for i, c := range req.Cards {
		drawn[i] = domain.DrawnCard{CardID: c.CardID, Reversed: c.Reversed}
	}

	result, err := h.readingService.InterpretCards(r.Context(), category, drawn)
	if err != nil {
		status, message := mapError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, "", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result.Interpretation)
}
