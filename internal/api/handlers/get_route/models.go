package get_route

import (
	"encoding/json"
	"math"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/mapbox"
)

// Источник расстояния
const (
	SourceMapbox       = "mapbox"
	SourceStraightLine = "straight_line"
)

// RouteResponse HTTP response model
type RouteResponse struct {
	PressingID      string             `json:"pressingId"`
	From            domain.Coordinates `json:"from"`
	To              domain.Coordinates `json:"to"`
	DistanceKm      float64            `json:"distanceKm"`
	DurationMinutes *int               `json:"durationMinutes,omitempty"`
	Geometry        json.RawMessage    `json:"geometry,omitempty"`
	Source          string             `json:"source"`
}

// FromRoute маршрут Mapbox
func FromRoute(pressingID string, from, to domain.Coordinates, route *mapbox.Route) *RouteResponse {
	minutes := int(math.Ceil(route.DurationSeconds / 60))
	return &RouteResponse{
		PressingID:      pressingID,
		From:            from,
		To:              to,
		DistanceKm:      roundKm(route.DistanceMeters / 1000),
		DurationMinutes: &minutes,
		Geometry:        route.Geometry,
		Source:          SourceMapbox,
	}
}

// StraightLine расстояние по прямой, когда маршрут недоступен
func StraightLine(pressingID string, from, to domain.Coordinates) *RouteResponse {
	return &RouteResponse{
		PressingID: pressingID,
		From:       from,
		To:         to,
		DistanceKm: roundKm(domain.HaversineKm(from, to)),
		Source:     SourceStraightLine,
	}
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
