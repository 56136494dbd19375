package bulk_time_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/usecase/plan_bulk_slots"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgInvalidInput       = "Paramètres invalides : vérifiez les jours, la durée et la capacité des créneaux."
	msgInvalidDateRange   = "Période invalide : les dates doivent être futures et couvrir au plus 90 jours."
	msgInvalidHours       = "Horaires invalides : l'heure d'ouverture doit précéder l'heure de fermeture."
	msgEmptyPlan          = "Aucun créneau ne correspond à ces paramètres."
	msgCreateFailed       = "Impossible de créer les créneaux."
)

type Handler struct {
	planner BulkSlotsPlanner
	logger  Logger
}

func NewHandler(planner BulkSlotsPlanner, logger Logger) *Handler {
	return &Handler{
		planner: planner,
		logger:  logger,
	}
}

// Handle POST /api/v1/pressings/{pressingId}/bulk-time-slots
// dryRun=true возвращает только предпросмотр сетки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pressingID := mux.Vars(r)["pressingId"]

	var req BulkTimeSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pressings/{id}/bulk-time-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(pressingID)
	if err != nil {
		h.logger.Warn("POST /pressings/{id}/bulk-time-slots - Invalid dates: pressing_id=%s, error=%v", pressingID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
		return
	}

	resp, err := h.planner.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, plan_bulk_slots.ErrInvalidDateRange):
			handlers.RespondBadRequest(w, msgInvalidDateRange)
		case errors.Is(err, plan_bulk_slots.ErrInvalidHours):
			handlers.RespondBadRequest(w, msgInvalidHours)
		case errors.Is(err, plan_bulk_slots.ErrEmptyPlan):
			handlers.RespondBadRequest(w, msgEmptyPlan)
		case errors.Is(err, plan_bulk_slots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /pressings/{id}/bulk-time-slots - Failed to create slots: pressing_id=%s, error=%v", pressingID, err)
			handlers.RespondUpstreamError(w, err, msgCreateFailed)
		}
		return
	}

	status := http.StatusCreated
	if !resp.Submitted {
		status = http.StatusOK
	}

	h.logger.Info("POST /pressings/{id}/bulk-time-slots - Plan processed: pressing_id=%s, planned=%d, submitted=%v, created=%d",
		pressingID, resp.TotalSlots, resp.Submitted, resp.Created)
	handlers.RespondJSON(w, status, FromUseCaseResponse(resp))
}
