package search_pressings

import (
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// SortOption порядок выдачи
type SortOption string

const (
	SortRelevance  SortOption = "relevance"
	SortDistance   SortOption = "distance"
	SortRating     SortOption = "rating"
	SortPrice      SortOption = "price"
	SortNewest     SortOption = "newest"
	SortPopularity SortOption = "popularity"
)

// ParseSortOption разбирает параметр сортировки; пустое значение = relevance
func ParseSortOption(s string) (SortOption, bool) {
	switch SortOption(s) {
	case "":
		return SortRelevance, true
	case SortRelevance, SortDistance, SortRating, SortPrice, SortNewest, SortPopularity:
		return SortOption(s), true
	}
	return "", false
}

// Filters фильтры поиска. Нулевые значения фильтр не применяют.
type Filters struct {
	Query         string
	Neighborhoods []string
	Services      []string
	MinPrice      *float64
	MaxPrice      *float64
	MinRating     float64
	MaxDistanceKm float64
	OpenNow       bool
	Delivery      bool
	Pickup        bool
	Sort          SortOption
}

// Request модель запроса поиска
type Request struct {
	Owner   string // владелец сессии, для истории поиска
	Filters Filters
	Origin  domain.Coordinates
	Now     time.Time
}

// Response модель ответа
type Response struct {
	Pressings []domain.Pressing
	Total     int // до фильтрации
	Origin    domain.Coordinates
}
