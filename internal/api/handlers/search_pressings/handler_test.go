package search_pressings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/geolocation"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/internal/session"
	searchPressings "github.com/geopressci/pressing-gateway/internal/usecase/search_pressings"
	"github.com/geopressci/pressing-gateway/pkg/logger"
)

type mockUseCase struct {
	req  *searchPressings.Request
	resp *searchPressings.Response
	err  error
}

func (m *mockUseCase) Execute(ctx context.Context, req *searchPressings.Request) (*searchPressings.Response, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type stubFavorites []string

func (s stubFavorites) Favorites(ctx context.Context, owner string) ([]string, error) {
	return s, nil
}

func newLocatorFactory(fallback geolocation.PositionSource) LocatorFactory {
	return func(primary geolocation.PositionSource) Locator {
		return geolocation.NewLocator(primary, fallback, 0, nil, logger.Discard())
	}
}

func newHandler(uc *mockUseCase, fallback geolocation.PositionSource) *Handler {
	return NewHandler(uc, stubFavorites{"p2"}, newLocatorFactory(fallback), logger.Discard())
}

func okResponse(origin domain.Coordinates) *searchPressings.Response {
	return &searchPressings.Response{
		Pressings: []domain.Pressing{{ID: "p1", Name: "Alpha"}, {ID: "p2", Name: "Beta"}},
		Total:     5,
		Origin:    origin,
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) SearchResponse {
	t.Helper()
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandle_UsesReportedPosition(t *testing.T) {
	uc := &mockUseCase{resp: okResponse(domain.Coordinates{Latitude: 5.36, Longitude: -3.99})}
	h := newHandler(uc, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/pressings/search?q=lavage&sort=distance&neighborhoods=Cocody,Plateau&minRating=4&openNow=true&lat=5.36&lng=-3.99", nil)
	req = req.WithContext(session.WithOwner(req.Context(), "user-1", false))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, "user-1", uc.req.Owner)
	assert.Equal(t, "lavage", uc.req.Filters.Query)
	assert.Equal(t, searchPressings.SortDistance, uc.req.Filters.Sort)
	assert.Equal(t, []string{"Cocody", "Plateau"}, uc.req.Filters.Neighborhoods)
	assert.Equal(t, 4.0, uc.req.Filters.MinRating)
	assert.True(t, uc.req.Filters.OpenNow)
	assert.Equal(t, domain.Coordinates{Latitude: 5.36, Longitude: -3.99}, uc.req.Origin)

	resp := decode(t, rec)
	assert.Equal(t, string(geolocation.SourceDevice), resp.PositionSource)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 2, resp.Count)
	assert.False(t, resp.Pressings[0].IsFavorite)
	assert.True(t, resp.Pressings[1].IsFavorite)
	assert.Empty(t, resp.GeolocationError)
}

func TestHandle_GeoErrorFallsBackToDefault(t *testing.T) {
	uc := &mockUseCase{resp: okResponse(domain.AbidjanCenter)}
	h := newHandler(uc, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pressings/search?geoError=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.AbidjanCenter, uc.req.Origin)

	resp := decode(t, rec)
	assert.Equal(t, string(geolocation.SourceDefault), resp.PositionSource)
	assert.Equal(t, geolocation.MessageFor(geolocation.CodePermissionDenied), resp.GeolocationError)
}

type fixedSource struct {
	pos geolocation.Position
}

func (s fixedSource) CurrentPosition(ctx context.Context) (geolocation.Position, error) {
	return s.pos, nil
}

func TestHandle_NoPositionUsesFallbackSource(t *testing.T) {
	yopougon := domain.Coordinates{Latitude: 5.34, Longitude: -4.07}
	uc := &mockUseCase{resp: okResponse(yopougon)}
	h := newHandler(uc, fixedSource{pos: geolocation.Position{Coordinates: yopougon}})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pressings/search", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, yopougon, uc.req.Origin)

	resp := decode(t, rec)
	assert.Equal(t, string(geolocation.SourceIPFallback), resp.PositionSource)
	assert.Empty(t, resp.GeolocationError)
}

func TestHandle_InvalidParams(t *testing.T) {
	for _, query := range []string{"sort=cheapest", "minPrice=abc", "geoError=7", "lat=abc&lng=1"} {
		uc := &mockUseCase{}
		rec := httptest.NewRecorder()
		newHandler(uc, nil).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pressings/search?"+query, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		assert.Nil(t, uc.req, query)
	}
}

func TestHandle_UpstreamError(t *testing.T) {
	apiErr := &pressingapi.APIError{StatusCode: http.StatusServiceUnavailable, Message: "Maintenance en cours"}
	uc := &mockUseCase{err: errors.Join(searchPressings.ErrUpstream, apiErr)}

	rec := httptest.NewRecorder()
	newHandler(uc, nil).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pressings/search", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maintenance en cours")
}
