package pressingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// GetAvailableSlots GET /pressings/:id/available-slots?date=YYYY-MM-DD
func (c *Client) GetAvailableSlots(ctx context.Context, pressingID string, date time.Time) ([]*domain.TimeSlot, error) {
	path := fmt.Sprintf("/pressings/%s/available-slots", url.PathEscape(pressingID))
	query := url.Values{"date": {date.Format(domain.DateFormat)}}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	return c.decodeSlots(raw)
}

// CreateTimeSlot POST /pressings/:id/time-slots
func (c *Client) CreateTimeSlot(ctx context.Context, pressingID string, input TimeSlotInput) (*domain.TimeSlot, error) {
	path := fmt.Sprintf("/pressings/%s/time-slots", url.PathEscape(pressingID))

	var dto timeSlotDTO
	if err := c.do(ctx, http.MethodPost, path, nil, input, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// UpdateTimeSlot PUT /time-slots/:id
func (c *Client) UpdateTimeSlot(ctx context.Context, id string, input TimeSlotInput) (*domain.TimeSlot, error) {
	path := fmt.Sprintf("/time-slots/%s", url.PathEscape(id))

	var dto timeSlotDTO
	if err := c.do(ctx, http.MethodPut, path, nil, input, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// ToggleBlockTimeSlot PATCH /time-slots/:id/toggle-block
func (c *Client) ToggleBlockTimeSlot(ctx context.Context, id, reason string) (*domain.TimeSlot, error) {
	path := fmt.Sprintf("/time-slots/%s/toggle-block", url.PathEscape(id))
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}

	var dto timeSlotDTO
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// DeleteTimeSlot DELETE /time-slots/:id
func (c *Client) DeleteTimeSlot(ctx context.Context, id string) error {
	path := fmt.Sprintf("/time-slots/%s", url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// CreateBulkTimeSlots POST /pressings/:id/bulk-time-slots
func (c *Client) CreateBulkTimeSlots(ctx context.Context, pressingID string, input BulkTimeSlotsInput) (*BulkTimeSlotsResult, error) {
	path := fmt.Sprintf("/pressings/%s/bulk-time-slots", url.PathEscape(pressingID))

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, nil, input, &raw); err != nil {
		return nil, err
	}

	result := &BulkTimeSlotsResult{}
	trimmed := string(raw)
	if len(raw) > 0 && raw[0] == '[' {
		// сервер вернул созданные слоты списком
		var created []json.RawMessage
		if err := json.Unmarshal(raw, &created); err != nil {
			return nil, fmt.Errorf("%w: failed to decode bulk result: %v", ErrInvalidResponse, err)
		}
		result.Created = len(created)
		return result, nil
	}
	if trimmed != "" && trimmed != "null" {
		if err := json.Unmarshal(raw, result); err != nil {
			return nil, fmt.Errorf("%w: failed to decode bulk result: %v", ErrInvalidResponse, err)
		}
	}
	return result, nil
}

// GetSlotStats GET /pressings/:id/slot-stats
func (c *Client) GetSlotStats(ctx context.Context, pressingID string, from, to time.Time) (*domain.SlotStats, error) {
	path := fmt.Sprintf("/pressings/%s/slot-stats", url.PathEscape(pressingID))
	query := url.Values{}
	if !from.IsZero() {
		query.Set("startDate", from.Format(domain.DateFormat))
	}
	if !to.IsZero() {
		query.Set("endDate", to.Format(domain.DateFormat))
	}

	var stats domain.SlotStats
	if err := c.do(ctx, http.MethodGet, path, query, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) decodeSlots(raw json.RawMessage) ([]*domain.TimeSlot, error) {
	list, err := extractList(raw, "slots", "timeSlots", "availableSlots")
	if err != nil {
		return nil, err
	}

	var dtos []timeSlotDTO
	if err := json.Unmarshal(list, &dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode time slots: %v", ErrInvalidResponse, err)
	}

	slots := make([]*domain.TimeSlot, 0, len(dtos))
	for i := range dtos {
		slot, err := dtos[i].toDomain()
		if err != nil {
			c.log.Warn("GetAvailableSlots: skipping malformed slot id=%s: %v", dtos[i].ID, err)
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
