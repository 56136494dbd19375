package get_route

import (
	"context"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/mapbox"
)

type PressingClient interface {
	GetPressing(ctx context.Context, id string) (*domain.Pressing, error)
}

type DirectionsClient interface {
	Directions(ctx context.Context, from, to domain.Coordinates) (*mapbox.Route, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
