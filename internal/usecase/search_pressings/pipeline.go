package search_pressings

import (
	"sort"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// Apply вычисляет расстояние от origin, фильтрует и сортирует pressings.
// Входной срез не изменяется, повторное применение дает тот же результат.
func Apply(pressings []domain.Pressing, f Filters, origin domain.Coordinates, now time.Time) []domain.Pressing {
	result := make([]domain.Pressing, 0, len(pressings))

	query := fold(f.Query)
	neighborhoods := foldedSet(f.Neighborhoods)
	services := foldedSet(f.Services)

	for _, p := range pressings {
		if p.HasLocation {
			p.Distance = domain.HaversineKm(origin, p.Location)
		} else {
			p.Distance = 0
			// расстояние неизвестно: не участвует в фильтре и сортировке по расстоянию
			if f.MaxDistanceKm > 0 || f.Sort == SortDistance {
				continue
			}
		}

		if query != "" && !matchesQuery(&p, query) {
			continue
		}
		if len(neighborhoods) > 0 && !neighborhoods[fold(p.Neighborhood)] {
			continue
		}
		if len(services) > 0 && !offersAny(&p, services) {
			continue
		}
		if f.MinPrice != nil || f.MaxPrice != nil {
			avg := p.AveragePrice()
			if f.MinPrice != nil && avg < *f.MinPrice {
				continue
			}
			if f.MaxPrice != nil && avg > *f.MaxPrice {
				continue
			}
		}
		if f.MaxDistanceKm > 0 && p.Distance > f.MaxDistanceKm {
			continue
		}
		if f.MinRating > 0 && p.Rating < f.MinRating {
			continue
		}
		if f.OpenNow && !p.OpenAt(now) {
			continue
		}
		if f.Delivery && !p.OffersDelivery() {
			continue
		}
		if f.Pickup && !p.OffersPickup() {
			continue
		}

		result = append(result, p)
	}

	sortPressings(result, f.Sort)
	return result
}

func matchesQuery(p *domain.Pressing, query string) bool {
	if containsFolded(p.Name, query) || containsFolded(p.Address, query) || containsFolded(p.Neighborhood, query) {
		return true
	}
	for _, s := range p.Services {
		if containsFolded(s.Name, query) {
			return true
		}
	}
	return false
}

func offersAny(p *domain.Pressing, services map[string]bool) bool {
	for _, s := range p.Services {
		if services[fold(s.Name)] || services[fold(s.Category)] {
			return true
		}
	}
	return false
}

// sortPressings устойчивая сортировка; relevance сохраняет порядок API
func sortPressings(list []domain.Pressing, option SortOption) {
	var less func(a, b *domain.Pressing) bool

	switch option {
	case SortDistance:
		less = func(a, b *domain.Pressing) bool { return a.Distance < b.Distance }
	case SortRating:
		less = func(a, b *domain.Pressing) bool { return a.Rating > b.Rating }
	case SortPrice:
		less = func(a, b *domain.Pressing) bool { return a.AveragePrice() < b.AveragePrice() }
	case SortNewest:
		less = func(a, b *domain.Pressing) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortPopularity:
		less = func(a, b *domain.Pressing) bool { return a.ReviewCount > b.ReviewCount }
	default:
		return
	}

	sort.SliceStable(list, func(i, j int) bool {
		return less(&list[i], &list[j])
	})
}
