package update_appointment_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/service/appointments"
	"github.com/geopressci/pressing-gateway/internal/service/appointments/models"
)

const (
	msgNotFound       = "Rendez-vous introuvable."
	msgConfirmFailed  = "Impossible de confirmer le rendez-vous."
	msgCompleteFailed = "Impossible de terminer le rendez-vous."
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Confirm PATCH /api/v1/appointments/{appointmentId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /appointments/{id}/confirm", msgConfirmFailed, h.service.Confirm)
}

// Complete PATCH /api/v1/appointments/{appointmentId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /appointments/{id}/complete", msgCompleteFailed, h.service.Complete)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	fallback string,
	action func(ctx context.Context, id string) (*models.AppointmentResponse, error),
) {
	appointmentID := mux.Vars(r)["appointmentId"]

	appointment, err := action(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("%s - Appointment not found: appointment_id=%s", route, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("%s - Failed to update appointment: appointment_id=%s, error=%v", route, appointmentID, err)
			handlers.RespondUpstreamError(w, err, fallback)
		}
		return
	}

	h.logger.Info("%s - Appointment updated: appointment_id=%s, status=%s", route, appointmentID, appointment.Status)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
