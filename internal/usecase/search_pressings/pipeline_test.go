package search_pressings

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/pkg/ptr"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC) // понедельник

func fixtures() []domain.Pressing {
	return []domain.Pressing{
		{
			ID:           "p1",
			Name:         "Pressing Étoile",
			Address:      "Rue des Jardins",
			Neighborhood: "Cocody",
			Location:     domain.Coordinates{Latitude: 5.3600, Longitude: -3.9900},
			HasLocation:  true,
			Rating:       4.5,
			ReviewCount:  12,
			Services: []domain.PressingService{
				{ID: "s1", Name: "Lavage à sec", Category: "nettoyage", Price: 2000},
				{ID: "s2", Name: "Livraison à domicile", Category: "logistique", Price: 1000},
			},
			IsOpen:    true,
			CreatedAt: now.AddDate(0, -1, 0),
		},
		{
			ID:           "p2",
			Name:         "Clean Express",
			Address:      "Boulevard Latrille",
			Neighborhood: "Plateau",
			Location:     domain.Coordinates{Latitude: 5.3200, Longitude: -4.0200},
			HasLocation:  true,
			Rating:       3.8,
			ReviewCount:  40,
			Services: []domain.PressingService{
				{ID: "s3", Name: "Repassage", Category: "repassage", Price: 500},
				{ID: "s4", Name: "Collecte express", Category: "logistique", Price: 700},
			},
			OpeningHours: []domain.OpeningHours{{Day: time.Monday, Open: "08:00", Close: "09:00"}},
			CreatedAt:    now.AddDate(0, 0, -3),
		},
		{
			ID:           "p3",
			Name:         "Blanchisserie du Marché",
			Address:      "Marché de Treichville",
			Neighborhood: "Treichville",
			Rating:       4.9,
			ReviewCount:  3,
			Services: []domain.PressingService{
				{ID: "s5", Name: "Lavage", Category: "nettoyage", Price: 1500},
			},
			IsOpen:    true,
			CreatedAt: now.AddDate(-1, 0, 0),
		},
	}
}

func ids(list []domain.Pressing) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_TextQueryIgnoresCaseAndAccents(t *testing.T) {
	origin := domain.AbidjanCenter

	assert.Equal(t, []string{"p1"}, ids(Apply(fixtures(), Filters{Query: "etoile"}, origin, now)))
	assert.Equal(t, []string{"p3"}, ids(Apply(fixtures(), Filters{Query: "MARCHE"}, origin, now)))
	// совпадение по названию услуги
	assert.Equal(t, []string{"p2"}, ids(Apply(fixtures(), Filters{Query: "repass"}, origin, now)))
	assert.Empty(t, Apply(fixtures(), Filters{Query: "introuvable"}, origin, now))
}

func TestApply_Filters(t *testing.T) {
	origin := domain.AbidjanCenter

	tests := []struct {
		name     string
		filters  Filters
		expected []string
	}{
		{"no filters keeps input order", Filters{}, []string{"p1", "p2", "p3"}},
		{"neighborhood", Filters{Neighborhoods: []string{"cocody", "Treichville"}}, []string{"p1", "p3"}},
		{"service category", Filters{Services: []string{"repassage"}}, []string{"p2"}},
		{"service name", Filters{Services: []string{"Lavage"}}, []string{"p3"}},
		{"price range", Filters{MinPrice: ptr.Ptr(1000.0), MaxPrice: ptr.Ptr(1500.0)}, []string{"p1", "p3"}},
		{"max price", Filters{MaxPrice: ptr.Ptr(600.0)}, []string{"p2"}},
		{"min rating", Filters{MinRating: 4.6}, []string{"p3"}},
		{"distance drops unknown location", Filters{MaxDistanceKm: 10}, []string{"p1", "p2"}},
		{"open now", Filters{OpenNow: true}, []string{"p1", "p3"}},
		{"delivery", Filters{Delivery: true}, []string{"p1"}},
		{"pickup", Filters{Pickup: true}, []string{"p2"}},
		{"combined", Filters{MinRating: 4, OpenNow: true, Delivery: true}, []string{"p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Apply(fixtures(), tt.filters, origin, now)))
		})
	}
}

func TestApply_Sorting(t *testing.T) {
	origin := domain.Coordinates{Latitude: 5.3210, Longitude: -4.0190} // рядом с Plateau

	tests := []struct {
		sort     SortOption
		expected []string
	}{
		{SortRelevance, []string{"p1", "p2", "p3"}},
		{SortDistance, []string{"p2", "p1"}}, // p3 без координат
		{SortRating, []string{"p3", "p1", "p2"}},
		{SortPrice, []string{"p2", "p1", "p3"}}, // p1 и p3 равны, порядок API
		{SortNewest, []string{"p2", "p1", "p3"}},
		{SortPopularity, []string{"p2", "p1", "p3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(Apply(fixtures(), Filters{Sort: tt.sort}, origin, now)))
		})
	}
}

func TestApply_Properties(t *testing.T) {
	origin := domain.AbidjanCenter
	input := fixtures()

	byDistance := Apply(input, Filters{Sort: SortDistance}, origin, now)
	require.NotEmpty(t, byDistance)
	for i := 1; i < len(byDistance); i++ {
		assert.LessOrEqual(t, byDistance[i-1].Distance, byDistance[i].Distance)
	}
	for _, p := range byDistance {
		assert.True(t, p.HasLocation, p.ID)
	}

	byRating := Apply(input, Filters{Sort: SortRating}, origin, now)
	for i := 1; i < len(byRating); i++ {
		assert.GreaterOrEqual(t, byRating[i-1].Rating, byRating[i].Rating)
	}

	f := Filters{Query: "lavage", Sort: SortPrice}
	once := Apply(input, f, origin, now)
	twice := Apply(once, f, origin, now)
	assert.Equal(t, once, twice)

	// входной срез не изменяется
	assert.Equal(t, fixtures(), input)
}

func TestApply_DistanceComputed(t *testing.T) {
	result := Apply(fixtures(), Filters{}, domain.AbidjanCenter, now)
	require.Len(t, result, 3)

	assert.InDelta(t, domain.HaversineKm(domain.AbidjanCenter, result[0].Location), result[0].Distance, 1e-9)
	assert.Greater(t, result[0].Distance, 0.0)
	assert.Equal(t, 0.0, result[2].Distance)
}

func TestApply_DistanceSortSkipsUnknownLocation(t *testing.T) {
	// pressing без координат рядом с origin не должен попасть в выдачу
	input := []domain.Pressing{
		{ID: "far", Location: domain.Coordinates{Latitude: 5.40, Longitude: -3.95}, HasLocation: true},
		{ID: "nowhere"},
		{ID: "near", Location: domain.AbidjanCenter, HasLocation: true},
	}

	result := Apply(input, Filters{Sort: SortDistance}, domain.AbidjanCenter, now)
	assert.Equal(t, []string{"near", "far"}, ids(result))
	assert.True(t, sort.SliceIsSorted(result, func(i, j int) bool { return result[i].Distance < result[j].Distance }))

	// без сортировки по расстоянию pressing остается
	assert.Len(t, Apply(input, Filters{}, domain.AbidjanCenter, now), 3)
}

func TestParseSortOption(t *testing.T) {
	s, ok := ParseSortOption("")
	assert.True(t, ok)
	assert.Equal(t, SortRelevance, s)

	s, ok = ParseSortOption("rating")
	assert.True(t, ok)
	assert.Equal(t, SortRating, s)

	_, ok = ParseSortOption("cheapest")
	assert.False(t, ok)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "pressing etoile", fold("  Pressing ÉTOILE "))
	assert.Equal(t, "ca coute", fold("Ça coûte"))
}
