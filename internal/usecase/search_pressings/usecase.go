package search_pressings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// UseCase поиск pressings с фильтрами и сортировкой
type UseCase struct {
	client    PressingsClient
	recent    RecentSearches
	debouncer *Debouncer
	metrics   MetricsRecorder
	logger    Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(client PressingsClient, recent RecentSearches, debouncer *Debouncer, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		client:    client,
		recent:    recent,
		debouncer: debouncer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute загружает pressings рядом с origin и применяет конвейер фильтров
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if err := validateFilters(&req.Filters); err != nil {
		uc.logger.Warn("SearchPressings: validation failed: %v", err)
		return nil, err
	}

	origin := req.Origin
	if origin.IsZero() || !origin.IsValid() {
		origin = domain.AbidjanCenter
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	sortBy, _ := ParseSortOption(string(req.Filters.Sort))
	req.Filters.Sort = sortBy

	pressings, err := uc.client.ListPressings(ctx, pressingapi.NearbyQuery{
		Position: &origin,
		RadiusKm: req.Filters.MaxDistanceKm,
	})
	if err != nil {
		uc.logger.Error("SearchPressings: failed to list pressings: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	result := Apply(pressings, req.Filters, origin, now)

	uc.rememberQuery(ctx, req.Owner, req.Filters.Query)
	if uc.metrics != nil {
		uc.metrics.IncSearchRequest(string(sortBy))
	}

	uc.logger.Info("SearchPressings: query=%q, sort=%s, total=%d, matched=%d",
		req.Filters.Query, sortBy, len(pressings), len(result))

	return &Response{
		Pressings: result,
		Total:     len(pressings),
		Origin:    origin,
	}, nil
}

// rememberQuery сохраняет запрос в историю после паузы ввода
func (uc *UseCase) rememberQuery(ctx context.Context, owner, query string) {
	query = strings.TrimSpace(query)
	if query == "" || owner == "" || uc.recent == nil || uc.debouncer == nil {
		return
	}

	bg := context.WithoutCancel(ctx)
	uc.debouncer.Trigger(owner, func() {
		if err := uc.recent.AddRecentSearch(bg, owner, query); err != nil {
			uc.logger.Warn("SearchPressings: failed to save recent search for owner=%s: %v", owner, err)
		}
	})
}
