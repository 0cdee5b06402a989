package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bkjNprosoft/tarot-2026/internal/api/middleware"
	"github.com/bkjNprosoft/tarot-2026/internal/api/shared"
	"github.com/bkjNprosoft/tarot-2026/internal/domain"
	"github.com/bkjNprosoft/tarot-2026/internal/service"
)

// ReadingHandler handles reading-related HTTP requests.
type ReadingHandler struct {
	readingService *service.ReadingService
}

// NewReadingHandler creates a new ReadingHandler.
func NewReadingHandler(readingService *service.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

// CreateReading handles POST /api/readings requests. The caller submits a
// completed three-card draw; an authenticated user owns the reading,
// anonymous readings carry no owner.
func (h *ReadingHandler) CreateReading(w http.ResponseWriter, r *http.Request) {
	var req CreateReadingRequest
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

	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(r); ok {
		userID = &id
	}

	reading, err := h.readingService.CreateReading(r.Context(), userID, category, drawn)
	if err != nil {
		status, message := mapError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, "", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, reading)
}

// GetReading handles GET /api/readings/{id} requests.
func (h *ReadingHandler) GetReading(w http.ResponseWriter, r *http.Request) {
	id, ok := readingID(w, r)
	if !ok {
		return
	}

	reading, err := h.readingService.GetReading(r.Context(), id)
	if err != nil {
		status, message := mapError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, "", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reading)
}

// ListReadings handles GET /api/readings requests. Authenticated callers
// see their own readings; anonymous callers see the store's full scope.
func (h *ReadingHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(r); ok {
		userID = &id
	}

	readings, err := h.readingService.ListReadings(r.Context(), userID)
	if err != nil {
		status, message := mapError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, "", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, readings)
}

// DeleteReading handles DELETE /api/readings/{id} requests. Deleting an
// absent reading still returns 204.
func (h *ReadingHandler) DeleteReading(w http.ResponseWriter, r *http.Request) {
	id, ok := readingID(w, r)
	if !ok {
		return
	}

	if err := h.readingService.DeleteReading(r.Context(), id); err != nil {
		status, message := mapError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, "", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GenerateInterpretation handles POST /api/readings/{id}/interpretation
// requests: it generates the AI interpretation for a stored reading and
// persists it.
func (h *ReadingHandler) GenerateInterpretation(w http.ResponseWriter, r *http.Request) {
	id, ok := readingID(w, r)
	if !ok {
		return
	}

	reading, err := h.readingService.GenerateInterpretation(r.Context(), id)
	if err != nil {
		status, message := mapError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, "", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reading)
}

// readingID parses the {id} URL parameter, responding with 400 on garbage.
func readingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid reading ID", raw)
		return uuid.Nil, false
	}
	return id, true
}
