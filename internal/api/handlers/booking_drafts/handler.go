package booking_drafts

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/session"
	"github.com/geopressci/pressing-gateway/internal/usecase/booking"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgInvalidDate        = "Format de date invalide, attendu AAAA-MM-JJ."
	msgInvalidInput       = "Données de réservation invalides."
	msgNotFound           = "Réservation en cours introuvable."
	msgCannotProceed      = "Veuillez compléter cette étape avant de continuer."
	msgInvalidStep        = "Action impossible à cette étape."
	msgNoSlot             = "Veuillez choisir un créneau."
	msgNoPickupAddress    = "Veuillez saisir l'adresse de collecte."
	msgNoServices         = "Veuillez choisir au moins un service."
	msgInFlight           = "Votre réservation est en cours d'envoi."
	msgAlreadySubmitted   = "Cette réservation a déjà été confirmée."
	msgSubmitFailed       = "Impossible de créer la réservation. Veuillez réessayer."
)

type Handler struct {
	service   DraftService
	submitter DraftSubmitter
	logger    Logger
}

func NewHandler(service DraftService, submitter DraftSubmitter, logger Logger) *Handler {
	return &Handler{
		service:   service,
		submitter: submitter,
		logger:    logger,
	}
}

// Create POST /api/v1/booking-drafts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())

	var req CreateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-drafts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.service.Create(r.Context(), owner, req.ToInput())
	if err != nil {
		h.respondError(w, "POST /booking-drafts", err)
		return
	}

	h.logger.Info("POST /booking-drafts - Draft created: owner=%s, draft_id=%s, pressing_id=%s",
		owner, draft.ID, draft.PressingID)
	handlers.RespondJSON(w, http.StatusCreated, FromDraft(draft, h.service.Options()))
}

// Get GET /api/v1/booking-drafts/{draftId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())
	draftID := mux.Vars(r)["draftId"]

	draft, err := h.service.Get(r.Context(), owner, draftID)
	if err != nil {
		h.respondError(w, "GET /booking-drafts/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDraft(draft, h.service.Options()))
}

// SelectSlot PUT /api/v1/booking-drafts/{draftId}/slot
func (h *Handler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())
	draftID := mux.Vars(r)["draftId"]

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-drafts/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		h.logger.Warn("PUT /booking-drafts/{id}/slot - Invalid date: draft_id=%s, error=%v", draftID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	draft, err := h.service.SelectSlot(r.Context(), owner, draftID, input)
	if err != nil {
		h.respondError(w, "PUT /booking-drafts/{id}/slot", err)
		return
	}

	h.logger.Info("PUT /booking-drafts/{id}/slot - Slot selected: owner=%s, draft_id=%s, date=%s",
		owner, draftID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromDraft(draft, h.service.Options()))
}

// SetAddress PUT /api/v1/booking-drafts/{draftId}/address
func (h *Handler) SetAddress(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())
	draftID := mux.Vars(r)["draftId"]

	var req AddressRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-drafts/{id}/address - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.service.SetAddress(r.Context(), owner, draftID, req.ToInput())
	if err != nil {
		h.respondError(w, "PUT /booking-drafts/{id}/address", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDraft(draft, h.service.Options()))
}

// Step POST /api/v1/booking-drafts/{draftId}/step
func (h *Handler) Step(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())
	draftID := mux.Vars(r)["draftId"]

	var req StepRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-drafts/{id}/step - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.service.Move(r.Context(), owner, draftID, req.Direction)
	if err != nil {
		h.respondError(w, "POST /booking-drafts/{id}/step", err)
		return
	}

	h.logger.Info("POST /booking-drafts/{id}/step - Step changed: owner=%s, draft_id=%s, direction=%s, step=%s",
		owner, draftID, req.Direction, draft.Step)
	handlers.RespondJSON(w, http.StatusOK, FromDraft(draft, h.service.Options()))
}

// Submit POST /api/v1/booking-drafts/{draftId}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())
	draftID := mux.Vars(r)["draftId"]

	draft, err := h.submitter.Submit(r.Context(), owner, draftID)
	if err != nil {
		h.respondError(w, "POST /booking-drafts/{id}/submit", err)
		return
	}

	h.logger.Info("POST /booking-drafts/{id}/submit - Appointment created: owner=%s, draft_id=%s, appointment_id=%s",
		owner, draftID, draft.AppointmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromDraft(draft, h.service.Options()))
}

// Delete DELETE /api/v1/booking-drafts/{draftId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())
	draftID := mux.Vars(r)["draftId"]

	if err := h.service.Delete(r.Context(), owner, draftID); err != nil {
		h.respondError(w, "DELETE /booking-drafts/{id}", err)
		return
	}

	h.logger.Info("DELETE /booking-drafts/{id} - Draft deleted: owner=%s, draft_id=%s", owner, draftID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	var submitErr *booking.SubmitError

	switch {
	case errors.As(err, &submitErr):
		h.logger.Warn("%s - Submission failed: %v", route, err)
		handlers.RespondUpstreamError(w, err, msgSubmitFailed)

	case errors.Is(err, booking.ErrDraftNotFound):
		h.logger.Warn("%s - Draft not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, booking.ErrSubmissionInFlight):
		h.logger.Warn("%s - Submission in flight", route)
		handlers.RespondConflict(w, msgInFlight)

	case errors.Is(err, booking.ErrAlreadySubmitted):
		h.logger.Warn("%s - Draft already submitted", route)
		handlers.RespondConflict(w, msgAlreadySubmitted)

	case errors.Is(err, booking.ErrCannotProceed):
		h.logger.Warn("%s - Step incomplete: %v", route, err)
		handlers.RespondBadRequest(w, msgCannotProceed)

	case errors.Is(err, booking.ErrInvalidStep):
		h.logger.Warn("%s - Invalid step transition: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStep)

	case errors.Is(err, booking.ErrNoSlot):
		handlers.RespondBadRequest(w, msgNoSlot)

	case errors.Is(err, booking.ErrNoPickupAddress):
		handlers.RespondBadRequest(w, msgNoPickupAddress)

	case errors.Is(err, booking.ErrNoServices):
		handlers.RespondBadRequest(w, msgNoServices)

	case errors.Is(err, booking.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
