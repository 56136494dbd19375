package search_pressings

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/geolocation"
	searchPressings "github.com/geopressci/pressing-gateway/internal/usecase/search_pressings"
)

// SearchResponse HTTP response model
type SearchResponse struct {
	Pressings        []handlers.PressingResponse `json:"pressings"`
	Total            int                         `json:"total"`
	Count            int                         `json:"count"`
	Origin           domain.Coordinates          `json:"origin"`
	PositionSource   string                      `json:"positionSource"`
	GeolocationError string                      `json:"geolocationError,omitempty"`
}

// ParseFilters разбирает query параметры поиска
func ParseFilters(r *http.Request) (searchPressings.Filters, error) {
	q := r.URL.Query()

	sortBy, ok := searchPressings.ParseSortOption(q.Get("sort"))
	if !ok {
		return searchPressings.Filters{}, fmt.Errorf("sort: unknown option %q", q.Get("sort"))
	}

	minPrice, err := handlers.QueryFloat(r, "minPrice")
	if err != nil {
		return searchPressings.Filters{}, err
	}
	maxPrice, err := handlers.QueryFloat(r, "maxPrice")
	if err != nil {
		return searchPressings.Filters{}, err
	}
	minRating, err := handlers.QueryFloat(r, "minRating")
	if err != nil {
		return searchPressings.Filters{}, err
	}
	maxDistance, err := handlers.QueryFloat(r, "maxDistance")
	if err != nil {
		return searchPressings.Filters{}, err
	}

	f := searchPressings.Filters{
		Query:         q.Get("q"),
		Neighborhoods: handlers.QueryList(r, "neighborhoods"),
		Services:      handlers.QueryList(r, "services"),
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		OpenNow:       handlers.QueryBool(r, "openNow"),
		Delivery:      handlers.QueryBool(r, "delivery"),
		Pickup:        handlers.QueryBool(r, "pickup"),
		Sort:          sortBy,
	}
	if minRating != nil {
		f.MinRating = *minRating
	}
	if maxDistance != nil {
		f.MaxDistanceKm = *maxDistance
	}
	return f, nil
}

// ParseReportedPosition позиция браузера из lat/lng/accuracy или код ошибки geoError
func ParseReportedPosition(r *http.Request) (geolocation.ReportedSource, error) {
	var src geolocation.ReportedSource

	if raw := r.URL.Query().Get("geoError"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil || code < int(geolocation.CodePermissionDenied) || code > int(geolocation.CodeTimeout) {
			return src, fmt.Errorf("geoError: expected 1, 2 or 3, got %q", raw)
		}
		src.ErrorCode = geolocation.ErrorCode(code)
		return src, nil
	}

	lat, err := handlers.QueryFloat(r, "lat")
	if err != nil {
		return src, err
	}
	lng, err := handlers.QueryFloat(r, "lng")
	if err != nil {
		return src, err
	}
	if lat == nil || lng == nil {
		return src, nil
	}

	src.Coordinates = &domain.Coordinates{Latitude: *lat, Longitude: *lng}
	if accuracy, err := handlers.QueryFloat(r, "accuracy"); err == nil && accuracy != nil {
		src.Accuracy = *accuracy
	}
	return src, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchPressings.Response, favorites []string, now time.Time) *SearchResponse {
	favSet := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		favSet[id] = true
	}

	pressings := make([]handlers.PressingResponse, 0, len(resp.Pressings))
	for i := range resp.Pressings {
		p := handlers.FromPressing(&resp.Pressings[i], now)
		p.IsFavorite = favSet[p.ID]
		pressings = append(pressings, p)
	}

	return &SearchResponse{
		Pressings: pressings,
		Total:     resp.Total,
		Count:     len(pressings),
		Origin:    resp.Origin,
	}
}
