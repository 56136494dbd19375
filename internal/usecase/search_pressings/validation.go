package search_pressings

import "fmt"

// validateFilters валидирует фильтры поиска
func validateFilters(f *Filters) error {
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("%w: minPrice must not be negative", ErrInvalidInput)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice must not be negative", ErrInvalidInput)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("%w: minPrice is greater than maxPrice", ErrInvalidInput)
	}
	if f.MinRating < 0 || f.MinRating > 5 {
		return fmt.Errorf("%w: minRating must be between 0 and 5", ErrInvalidInput)
	}
	if f.MaxDistanceKm < 0 {
		return fmt.Errorf("%w: maxDistance must not be negative", ErrInvalidInput)
	}
	if _, ok := ParseSortOption(string(f.Sort)); !ok {
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, f.Sort)
	}
	return nil
}
