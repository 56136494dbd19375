package recent_searches

import (
	"net/http"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/session"
)

// RecentSearchesResponse последние запросы, новые первыми
type RecentSearchesResponse struct {
	Queries []string `json:"queries"`
}

type Handler struct {
	service RecentSearchesService
	logger  Logger
}

func NewHandler(service RecentSearchesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/recent-searches
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())

	queries, err := h.service.RecentSearches(r.Context(), owner)
	if err != nil {
		h.logger.Error("GET /recent-searches - Failed to load history: owner=%s, error=%v", owner, err)
		handlers.RespondInternalError(w)
		return
	}
	if queries == nil {
		queries = []string{}
	}

	handlers.RespondJSON(w, http.StatusOK, RecentSearchesResponse{Queries: queries})
}

// Clear DELETE /api/v1/recent-searches
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	owner := session.OwnerFromContext(r.Context())

	if err := h.service.ClearRecentSearches(r.Context(), owner); err != nil {
		h.logger.Error("DELETE /recent-searches - Failed to clear history: owner=%s, error=%v", owner, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /recent-searches - History cleared: owner=%s", owner)
	w.WriteHeader(http.StatusNoContent)
}
