package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	loadAvailableSlots "github.com/geopressci/pressing-gateway/internal/usecase/load_available_slots"
)

const (
	msgMissingPressingID = "Identifiant du pressing requis."
	msgMissingDate       = "La date est requise."
	msgInvalidDate       = "Format de date invalide, attendu AAAA-MM-JJ."
)

type Handler struct {
	useCase LoadAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase LoadAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pressings/{pressingId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pressingID := mux.Vars(r)["pressingId"]
	if pressingID == "" {
		h.logger.Warn("GET /pressings/{id}/available-slots - Missing pressing ID")
		handlers.RespondBadRequest(w, msgMissingPressingID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /pressings/{id}/available-slots - Missing date: pressing_id=%s", pressingID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(pressingID, dateStr)
	if err != nil {
		h.logger.Warn("GET /pressings/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Ошибки API маркетплейса use case заменяет слотами по умолчанию
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, loadAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /pressings/{id}/available-slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /pressings/{id}/available-slots - Failed to get slots: pressing_id=%s, error=%v",
				pressingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /pressings/{id}/available-slots - Slots retrieved: pressing_id=%s, date=%s, source=%s, slots_count=%d",
		pressingID, response.Date, result.Source, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
