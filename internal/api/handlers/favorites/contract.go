package favorites

import "context"

type FavoritesService interface {
	Favorites(ctx context.Context, owner string) ([]string, error)
	ToggleFavorite(ctx context.Context, owner, pressingID string) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
