package favorites

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/service/preferences"
	"github.com/geopressci/pressing-gateway/internal/session"
)

const (
	msgInvalidPressingID = "Identifiant du pressing invalide."
)

type Handler struct {
	service FavoritesService
	logger  Logger
}

func NewHandler(service FavoritesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/favorites
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())

	ids, err := h.service.Favorites(r.Context(), owner)
	if err != nil {
		h.logger.Error("GET /favorites - Failed to load favorites: owner=%s, error=%v", owner, err)
		handlers.RespondInternalError(w)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	h.logger.Info("GET /favorites - Favorites retrieved: owner=%s, count=%d", owner, len(ids))
	handlers.RespondJSON(w, http.StatusOK, FavoritesResponse{PressingIDs: ids})
}

// Toggle PUT /api/v1/favorites/{pressingId}
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())
	pressingID := mux.Vars(r)["pressingId"]

	isFavorite, err := h.service.ToggleFavorite(r.Context(), owner, pressingID)
	if err != nil {
		switch {
		case errors.Is(err, preferences.ErrInvalidInput):
			h.logger.Warn("PUT /favorites/{id} - Invalid pressing ID: owner=%s, error=%v", owner, err)
			handlers.RespondBadRequest(w, msgInvalidPressingID)

		default:
			h.logger.Error("PUT /favorites/{id} - Failed to toggle favorite: owner=%s, pressing_id=%s, error=%v",
				owner, pressingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /favorites/{id} - Favorite toggled: owner=%s, pressing_id=%s, is_favorite=%v",
		owner, pressingID, isFavorite)
	handlers.RespondJSON(w, http.StatusOK, ToggleResponse{PressingID: pressingID, IsFavorite: isFavorite})
}
