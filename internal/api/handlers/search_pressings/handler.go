package search_pressings

import (
	"errors"
	"net/http"
	"time"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/geolocation"
	"github.com/geopressci/pressing-gateway/internal/session"
	searchPressings "github.com/geopressci/pressing-gateway/internal/usecase/search_pressings"
)

const (
	msgInvalidFilters = "Paramètres de recherche invalides."
	msgInvalidGeo     = "Position invalide."
	msgSearchFailed   = "Impossible de charger les pressings. Veuillez réessayer."
)

type Handler struct {
	useCase    SearchPressingsUseCase
	favorites  FavoritesService
	newLocator LocatorFactory
	logger     Logger
}

// NewHandler favorites может быть nil
func NewHandler(useCase SearchPressingsUseCase, favorites FavoritesService, newLocator LocatorFactory, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		favorites:  favorites,
		newLocator: newLocator,
		logger:     logger,
	}
}

// Handle GET /api/v1/pressings/search
// Query params: q, neighborhoods, services, minPrice, maxPrice, minRating, maxDistance,
// openNow, delivery, pickup, sort, lat, lng, accuracy, geoError
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filters, err := ParseFilters(r)
	if err != nil {
		h.logger.Warn("GET /pressings/search - Invalid filters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilters)
		return
	}

	reported, err := ParseReportedPosition(r)
	if err != nil {
		h.logger.Warn("GET /pressings/search - Invalid position: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGeo)
		return
	}

	// Позиция: браузер, затем fallback, затем центр Абиджана
	position := geolocation.DefaultPosition()
	geoMessage := ""
	pos, locErr := h.newLocator(reported).Locate(r.Context())
	if locErr == nil {
		position = pos
	} else {
		var le *geolocation.LocationError
		clientReported := reported.Coordinates != nil || reported.ErrorCode != geolocation.CodeUnknown
		if clientReported && errors.As(locErr, &le) {
			geoMessage = le.Message()
		}
		h.logger.Warn("GET /pressings/search - Geolocation failed, using default position: %v", locErr)
	}

	owner := session.OwnerFromContext(r.Context())
	now := time.Now()

	result, err := h.useCase.Execute(r.Context(), &searchPressings.Request{
		Owner:   owner,
		Filters: filters,
		Origin:  position.Coordinates,
		Now:     now,
	})
	if err != nil {
		switch {
		case errors.Is(err, searchPressings.ErrInvalidInput):
			h.logger.Warn("GET /pressings/search - Invalid filters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilters)

		case errors.Is(err, searchPressings.ErrUpstream):
			h.logger.Error("GET /pressings/search - Upstream error: %v", err)
			handlers.RespondUpstreamError(w, err, msgSearchFailed)

		default:
			h.logger.Error("GET /pressings/search - Failed to search pressings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	var favorites []string
	if owner != "" && h.favorites != nil {
		if favorites, err = h.favorites.Favorites(r.Context(), owner); err != nil {
			h.logger.Warn("GET /pressings/search - Failed to load favorites: owner=%s, error=%v", owner, err)
		}
	}

	response := FromUseCaseResponse(result, favorites, now)
	response.PositionSource = string(position.Source)
	response.GeolocationError = geoMessage

	h.logger.Info("GET /pressings/search - Search completed: source=%s, total=%d, count=%d",
		position.Source, result.Total, response.Count)
	handlers.RespondJSON(w, http.StatusOK, response)
}
