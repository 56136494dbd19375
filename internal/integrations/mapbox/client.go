package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// Client клиент Mapbox Geocoding и Directions API
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         Logger
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewClient создает клиент; пустой токен дает ErrDisabled на каждый вызов
func NewClient(baseURL, accessToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled настроен ли токен
func (c *Client) Enabled() bool {
	return c.accessToken != ""
}

// Geocode прямое геокодирование в Кот-д'Ивуаре с приоритетом близости к Абиджану
func (c *Client) Geocode(ctx context.Context, query string) ([]Place, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoResults
	}

	params := url.Values{
		"access_token": {c.accessToken},
		"country":      {"ci"},
		"language":     {"fr"},
		"limit":        {"5"},
		"proximity":    {formatLngLat(domain.AbidjanCenter)},
	}
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json", c.baseURL, url.PathEscape(query))

	var resp geocodingResponse
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(resp.Features))
	for _, f := range resp.Features {
		if len(f.Center) != 2 {
			continue
		}
		places = append(places, Place{
			Name:      f.PlaceName,
			Center:    domain.Coordinates{Latitude: f.Center[1], Longitude: f.Center[0]},
			Relevance: f.Relevance,
		})
	}
	if len(places) == 0 {
		return nil, ErrNoResults
	}

	return places, nil
}

// Directions маршрут на автомобиле между двумя точками, geometry в GeoJSON
func (c *Client) Directions(ctx context.Context, from, to domain.Coordinates) (*Route, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	params := url.Values{
		"access_token": {c.accessToken},
		"geometries":   {"geojson"},
		"overview":     {"full"},
	}
	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/driving/%s;%s",
		c.baseURL, formatLngLat(from), formatLngLat(to))

	var resp directionsResponse
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}

	if resp.Code != "" && resp.Code != "Ok" {
		return nil, fmt.Errorf("%w: code=%s: %s", ErrNoRoute, resp.Code, resp.Message)
	}
	if len(resp.Routes) == 0 {
		return nil, ErrNoRoute
	}

	route := resp.Routes[0]
	return &route, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("mapbox: unexpected status %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func formatLngLat(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Longitude, 'f', 6, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', 6, 64)
}
