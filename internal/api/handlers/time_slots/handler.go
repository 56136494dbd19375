package time_slots

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgInvalidSlot        = "Créneau invalide : vérifiez la date, les horaires et la capacité."
	msgInvalidDates       = "Format de date invalide, attendu AAAA-MM-JJ."
	msgCreateFailed       = "Impossible de créer le créneau."
	msgUpdateFailed       = "Impossible de modifier le créneau."
	msgToggleFailed       = "Impossible de bloquer ou débloquer le créneau."
	msgDeleteFailed       = "Impossible de supprimer le créneau."
	msgStatsFailed        = "Impossible de charger les statistiques des créneaux."
)

type Handler struct {
	client TimeSlotsClient
	logger Logger
}

func NewHandler(client TimeSlotsClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Create POST /api/v1/pressings/{pressingId}/time-slots
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	pressingID := mux.Vars(r)["pressingId"]

	var req TimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pressings/{id}/time-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.logger.Warn("POST /pressings/{id}/time-slots - Validation failed: pressing_id=%s, error=%v", pressingID, err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	slot, err := h.client.CreateTimeSlot(r.Context(), pressingID, input)
	if err != nil {
		h.logger.Error("POST /pressings/{id}/time-slots - Failed to create slot: pressing_id=%s, error=%v", pressingID, err)
		handlers.RespondUpstreamError(w, err, msgCreateFailed)
		return
	}

	h.logger.Info("POST /pressings/{id}/time-slots - Slot created: pressing_id=%s, slot_id=%s, date=%s, start=%s",
		pressingID, slot.ID, input.Date, input.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromTimeSlot(slot))
}

// Update PUT /api/v1/time-slots/{slotId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	var req TimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /time-slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.logger.Warn("PUT /time-slots/{id} - Validation failed: slot_id=%s, error=%v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	slot, err := h.client.UpdateTimeSlot(r.Context(), slotID, input)
	if err != nil {
		h.logger.Error("PUT /time-slots/{id} - Failed to update slot: slot_id=%s, error=%v", slotID, err)
		handlers.RespondUpstreamError(w, err, msgUpdateFailed)
		return
	}

	h.logger.Info("PUT /time-slots/{id} - Slot updated: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromTimeSlot(slot))
}

// ToggleBlock PATCH /api/v1/time-slots/{slotId}/toggle-block
func (h *Handler) ToggleBlock(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	var req ToggleBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /time-slots/{id}/toggle-block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.client.ToggleBlockTimeSlot(r.Context(), slotID, strings.TrimSpace(req.Reason))
	if err != nil {
		h.logger.Error("PATCH /time-slots/{id}/toggle-block - Failed to toggle block: slot_id=%s, error=%v", slotID, err)
		handlers.RespondUpstreamError(w, err, msgToggleFailed)
		return
	}

	h.logger.Info("PATCH /time-slots/{id}/toggle-block - Slot toggled: slot_id=%s, blocked=%v", slotID, slot.IsBlocked)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromTimeSlot(slot))
}

// Delete DELETE /api/v1/time-slots/{slotId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	if err := h.client.DeleteTimeSlot(r.Context(), slotID); err != nil {
		h.logger.Error("DELETE /time-slots/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
		handlers.RespondUpstreamError(w, err, msgDeleteFailed)
		return
	}

	h.logger.Info("DELETE /time-slots/{id} - Slot deleted: slot_id=%s", slotID)
	w.WriteHeader(http.StatusNoContent)
}

// Stats GET /api/v1/pressings/{pressingId}/slot-stats
// Query params: startDate, endDate (опционально, YYYY-MM-DD)
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	pressingID := mux.Vars(r)["pressingId"]

	from, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /pressings/{id}/slot-stats - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}
	to, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /pressings/{id}/slot-stats - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		h.logger.Warn("GET /pressings/{id}/slot-stats - endDate before startDate: pressing_id=%s", pressingID)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	stats, err := h.client.GetSlotStats(r.Context(), pressingID, from, to)
	if err != nil {
		h.logger.Error("GET /pressings/{id}/slot-stats - Failed to get stats: pressing_id=%s, error=%v", pressingID, err)
		handlers.RespondUpstreamError(w, err, msgStatsFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
