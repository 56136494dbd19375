package get_route

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/mapbox"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/pkg/logger"
)

var cocody = domain.Coordinates{Latitude: 5.36, Longitude: -3.99}

type stubPressings struct {
	pressing *domain.Pressing
	err      error
}

func (s stubPressings) GetPressing(ctx context.Context, id string) (*domain.Pressing, error) {
	return s.pressing, s.err
}

type stubDirections struct {
	route *mapbox.Route
	err   error
}

func (s stubDirections) Directions(ctx context.Context, from, to domain.Coordinates) (*mapbox.Route, error) {
	return s.route, s.err
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/pressings/{pressingId}/route", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_MapboxRoute(t *testing.T) {
	h := NewHandler(
		stubPressings{pressing: &domain.Pressing{ID: "p1", Location: cocody, HasLocation: true}},
		stubDirections{route: &mapbox.Route{DistanceMeters: 5432, DurationSeconds: 610}},
		logger.Discard(),
	)

	rec := serve(h, "/pressings/p1/route?lat=5.32&lng=-4.02")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, SourceMapbox, resp.Source)
	assert.Equal(t, 5.43, resp.DistanceKm)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, 11, *resp.DurationMinutes)
}

func TestHandle_StraightLineWhenMapboxDisabled(t *testing.T) {
	h := NewHandler(
		stubPressings{pressing: &domain.Pressing{ID: "p1", Location: cocody, HasLocation: true}},
		stubDirections{err: mapbox.ErrDisabled},
		logger.Discard(),
	)

	rec := serve(h, "/pressings/p1/route?lat=5.32&lng=-4.02")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, SourceStraightLine, resp.Source)
	assert.InDelta(t, 5.55, resp.DistanceKm, 0.2)
	assert.Nil(t, resp.DurationMinutes)
}

func TestHandle_Errors(t *testing.T) {
	ok := stubPressings{pressing: &domain.Pressing{ID: "p1", Location: cocody, HasLocation: true}}
	assert.Equal(t, http.StatusBadRequest,
		serve(NewHandler(ok, stubDirections{}, logger.Discard()), "/pressings/p1/route?lat=5.32").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(NewHandler(ok, stubDirections{}, logger.Discard()), "/pressings/p1/route?lat=95&lng=1").Code)

	noLocation := stubPressings{pressing: &domain.Pressing{ID: "p1"}}
	assert.Equal(t, http.StatusNotFound,
		serve(NewHandler(noLocation, stubDirections{}, logger.Discard()), "/pressings/p1/route?lat=5.32&lng=-4.02").Code)

	missing := stubPressings{err: &pressingapi.APIError{StatusCode: http.StatusNotFound, Message: "Pressing introuvable"}}
	rec := serve(NewHandler(missing, stubDirections{}, logger.Discard()), "/pressings/p1/route?lat=5.32&lng=-4.02")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pressing introuvable")
}
