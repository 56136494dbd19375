package mapbox

import (
	"encoding/json"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// Place результат прямого геокодирования
type Place struct {
	Name      string
	Center    domain.Coordinates
	Relevance float64
}

// Route маршрут на автомобиле
type Route struct {
	DistanceMeters  float64         `json:"distance"`
	DurationSeconds float64         `json:"duration"`
	Geometry        json.RawMessage `json:"geometry"`
}

type geocodingResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"` // [lng, lat]
		Relevance float64   `json:"relevance"`
	} `json:"features"`
}

type directionsResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Routes  []Route `json:"routes"`
}
