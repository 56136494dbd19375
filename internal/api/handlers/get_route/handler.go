package get_route

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/domain"
)

const (
	msgInvalidPosition   = "Paramètres lat et lng requis."
	msgPressingNoAddress = "Ce pressing n'a pas de position connue."
	msgPressingFailed    = "Impossible de charger le pressing."
)

type Handler struct {
	pressings  PressingClient
	directions DirectionsClient
	logger     Logger
}

func NewHandler(pressings PressingClient, directions DirectionsClient, logger Logger) *Handler {
	return &Handler{
		pressings:  pressings,
		directions: directions,
		logger:     logger,
	}
}

// Handle GET /api/v1/pressings/{pressingId}/route
// Query params: lat, lng (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pressingID := mux.Vars(r)["pressingId"]

	lat, errLat := handlers.QueryFloat(r, "lat")
	lng, errLng := handlers.QueryFloat(r, "lng")
	if errLat != nil || errLng != nil || lat == nil || lng == nil {
		h.logger.Warn("GET /pressings/{id}/route - Invalid position: pressing_id=%s", pressingID)
		handlers.RespondBadRequest(w, msgInvalidPosition)
		return
	}
	from := domain.Coordinates{Latitude: *lat, Longitude: *lng}
	if !from.IsValid() {
		h.logger.Warn("GET /pressings/{id}/route - Position out of range: pressing_id=%s", pressingID)
		handlers.RespondBadRequest(w, msgInvalidPosition)
		return
	}

	pressing, err := h.pressings.GetPressing(r.Context(), pressingID)
	if err != nil {
		h.logger.Error("GET /pressings/{id}/route - Failed to get pressing: pressing_id=%s, error=%v", pressingID, err)
		handlers.RespondUpstreamError(w, err, msgPressingFailed)
		return
	}
	if !pressing.HasLocation {
		h.logger.Warn("GET /pressings/{id}/route - Pressing has no location: pressing_id=%s", pressingID)
		handlers.RespondNotFound(w, msgPressingNoAddress)
		return
	}

	// Graceful degradation: без маршрута Mapbox отдаем расстояние по прямой
	route, err := h.directions.Directions(r.Context(), from, pressing.Location)
	if err != nil {
		h.logger.Warn("GET /pressings/{id}/route - Directions unavailable, using straight line: pressing_id=%s, error=%v",
			pressingID, err)
		handlers.RespondJSON(w, http.StatusOK, StraightLine(pressingID, from, pressing.Location))
		return
	}

	response := FromRoute(pressingID, from, pressing.Location, route)
	h.logger.Info("GET /pressings/{id}/route - Route computed: pressing_id=%s, distance_km=%.2f",
		pressingID, response.DistanceKm)
	handlers.RespondJSON(w, http.StatusOK, response)
}
