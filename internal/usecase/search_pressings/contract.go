package search_pressings

import (
	"context"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// PressingsClient интерфейс клиента API маркетплейса
type PressingsClient interface {
	ListPressings(ctx context.Context, q pressingapi.NearbyQuery) ([]domain.Pressing, error)
}

// RecentSearches хранилище последних поисковых запросов
type RecentSearches interface {
	AddRecentSearch(ctx context.Context, owner, query string) error
}

// MetricsRecorder счетчик поисковых запросов
type MetricsRecorder interface {
	IncSearchRequest(sort string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
