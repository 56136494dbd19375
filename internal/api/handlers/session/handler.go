package session

import (
	"errors"
	"net/http"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/internal/service/preferences"
	ctxsession "github.com/geopressci/pressing-gateway/internal/session"
)

const (
	msgInvalidRequestBody = "Corps de requête invalide."
	msgTokenRequired      = "Le jeton d'authentification est requis."
	msgOwnerRequired      = "En-tête X-Client-ID requis."
)

type Handler struct {
	store  SessionStore
	logger Logger
}

func NewHandler(store SessionStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Get GET /api/v1/session
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	authenticated := pressingapi.TokenFromContext(r.Context()) != ""
	handlers.RespondJSON(w, http.StatusOK, SessionResponse{Authenticated: authenticated})
}

// Save PUT /api/v1/session
// Сохраняет токен, полученный клиентом после входа
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	owner := ctxsession.OwnerFromContext(r.Context())

	var req SaveSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.store.Save(r.Context(), owner, req.Token); err != nil {
		h.respondError(w, "PUT /session", owner, err, msgTokenRequired)
		return
	}

	h.logger.Info("PUT /session - Session saved: owner=%s", owner)
	handlers.RespondJSON(w, http.StatusOK, SessionResponse{Authenticated: true})
}

// Delete DELETE /api/v1/session
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := ctxsession.OwnerFromContext(r.Context())

	if err := h.store.Clear(r.Context(), owner); err != nil {
		h.respondError(w, "DELETE /session", owner, err, msgOwnerRequired)
		return
	}

	h.logger.Info("DELETE /session - Session cleared: owner=%s", owner)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route, owner string, err error, invalidMsg string) {
	switch {
	case errors.Is(err, preferences.ErrNoOwner):
		h.logger.Warn("%s - Missing owner", route)
		handlers.RespondBadRequest(w, msgOwnerRequired)

	case errors.Is(err, preferences.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: owner=%s, error=%v", route, owner, err)
		handlers.RespondBadRequest(w, invalidMsg)

	default:
		h.logger.Error("%s - Session store failure: owner=%s, error=%v", route, owner, err)
		handlers.RespondInternalError(w)
	}
}
