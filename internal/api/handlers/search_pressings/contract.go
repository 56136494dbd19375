package search_pressings

import (
	"context"

	"github.com/geopressci/pressing-gateway/internal/geolocation"
	searchPressings "github.com/geopressci/pressing-gateway/internal/usecase/search_pressings"
)

type SearchPressingsUseCase interface {
	Execute(ctx context.Context, req *searchPressings.Request) (*searchPressings.Response, error)
}

type FavoritesService interface {
	Favorites(ctx context.Context, owner string) ([]string, error)
}

// Locator определение позиции клиента
type Locator interface {
	Locate(ctx context.Context) (geolocation.Position, error)
}

// LocatorFactory создает локатор для позиции, переданной браузером
type LocatorFactory func(primary geolocation.PositionSource) Locator

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
