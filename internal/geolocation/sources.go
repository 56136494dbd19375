package geolocation

import (
	"context"
	"fmt"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/mapbox"
)

// ReportedSource позиция, которую браузер передал вместе с запросом,
// либо код ошибки Geolocation API
type ReportedSource struct {
	Coordinates *domain.Coordinates
	Accuracy    float64
	ErrorCode   ErrorCode
}

func (s ReportedSource) CurrentPosition(ctx context.Context) (Position, error) {
	if s.ErrorCode != CodeUnknown {
		return Position{}, NewLocationError(s.ErrorCode, nil)
	}
	if s.Coordinates == nil {
		return Position{}, NewLocationError(CodePositionUnavailable, nil)
	}
	if !s.Coordinates.IsValid() {
		return Position{}, NewLocationError(CodePositionUnavailable, fmt.Errorf("coordinates out of range"))
	}
	return Position{
		Coordinates: *s.Coordinates,
		Accuracy:    s.Accuracy,
		Timestamp:   time.Now(),
	}, nil
}

// Geocoder прямое геокодирование
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]mapbox.Place, error)
}

// approximateAccuracy точность позиции, определенной по названию места, м
const approximateAccuracy = 5000

// MapboxSource приблизительная позиция по названию места через Mapbox
type MapboxSource struct {
	geocoder Geocoder
	place    string
}

func NewMapboxSource(geocoder Geocoder, place string) *MapboxSource {
	return &MapboxSource{geocoder: geocoder, place: place}
}

func (s *MapboxSource) CurrentPosition(ctx context.Context) (Position, error) {
	places, err := s.geocoder.Geocode(ctx, s.place)
	if err != nil {
		return Position{}, NewLocationError(CodePositionUnavailable, err)
	}
	return Position{
		Coordinates: places[0].Center,
		Accuracy:    approximateAccuracy,
		Timestamp:   time.Now(),
	}, nil
}
