package recent_searches

import "context"

type RecentSearchesService interface {
	RecentSearches(ctx context.Context, owner string) ([]string, error)
	ClearRecentSearches(ctx context.Context, owner string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
