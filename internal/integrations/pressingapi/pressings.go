package pressingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// ListPressings GET /pressings, с позицией - поиск рядом
func (c *Client) ListPressings(ctx context.Context, q NearbyQuery) ([]domain.Pressing, error) {
	query := url.Values{}
	if q.Position != nil {
		query.Set("lat", strconv.FormatFloat(q.Position.Latitude, 'f', 6, 64))
		query.Set("lng", strconv.FormatFloat(q.Position.Longitude, 'f', 6, 64))
	}
	if q.RadiusKm > 0 {
		query.Set("radius", strconv.FormatFloat(q.RadiusKm, 'f', -1, 64))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/pressings", query, nil, &raw); err != nil {
		return nil, err
	}

	list, err := extractList(raw, "pressings", "items", "results")
	if err != nil {
		return nil, err
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, fmt.Errorf("%w: failed to decode pressings: %v", ErrInvalidResponse, err)
	}

	pressings := make([]domain.Pressing, 0, len(items))
	for _, item := range items {
		pressings = append(pressings, NormalizePressing(item))
	}
	return pressings, nil
}

// GetPressing GET /pressings/:id
func (c *Client) GetPressing(ctx context.Context, id string) (*domain.Pressing, error) {
	path := fmt.Sprintf("/pressings/%s", url.PathEscape(id))

	var item map[string]interface{}
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &item); err != nil {
		return nil, err
	}
	if nested, ok := item["pressing"].(map[string]interface{}); ok {
		item = nested
	}

	p := NormalizePressing(item)
	return &p, nil
}
