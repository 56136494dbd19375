package pressingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// CreateAppointment POST /appointments
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*domain.Appointment, error) {
	var dto appointmentDTO
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, req, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// ListAppointments GET /appointments
func (c *Client) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]*domain.Appointment, error) {
	query := url.Values{}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}
	if filter.PressingID != "" {
		query.Set("pressing", filter.PressingID)
	}
	if filter.From != nil {
		query.Set("startDate", filter.From.Format(domain.DateFormat))
	}
	if filter.To != nil {
		query.Set("endDate", filter.To.Format(domain.DateFormat))
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/appointments", query, nil, &raw); err != nil {
		return nil, err
	}

	list, err := extractList(raw, "appointments", "items", "results")
	if err != nil {
		return nil, err
	}

	var dtos []appointmentDTO
	if err := json.Unmarshal(list, &dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode appointments: %v", ErrInvalidResponse, err)
	}

	appointments := make([]*domain.Appointment, 0, len(dtos))
	for i := range dtos {
		a, err := dtos[i].toDomain()
		if err != nil {
			c.log.Warn("ListAppointments: skipping malformed appointment id=%s: %v", dtos[i].ID, err)
			continue
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

// ConfirmAppointment PATCH /appointments/:id/confirm
func (c *Client) ConfirmAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return c.patchAppointment(ctx, id, "confirm", nil)
}

// CancelAppointment PATCH /appointments/:id/cancel
func (c *Client) CancelAppointment(ctx context.Context, id, reason string) (*domain.Appointment, error) {
	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	return c.patchAppointment(ctx, id, "cancel", body)
}

// RescheduleAppointment PATCH /appointments/:id/reschedule
func (c *Client) RescheduleAppointment(ctx context.Context, id string, req RescheduleRequest) (*domain.Appointment, error) {
	return c.patchAppointment(ctx, id, "reschedule", req)
}

// CompleteAppointment PATCH /appointments/:id/complete
func (c *Client) CompleteAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return c.patchAppointment(ctx, id, "complete", nil)
}

// AppointmentStats GET /appointments/stats
func (c *Client) AppointmentStats(ctx context.Context) (*domain.AppointmentStats, error) {
	var stats domain.AppointmentStats
	if err := c.do(ctx, http.MethodGet, "/appointments/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// patchAppointment переход статуса; пустое тело ответа дает nil без ошибки
func (c *Client) patchAppointment(ctx context.Context, id, action string, body interface{}) (*domain.Appointment, error) {
	path := fmt.Sprintf("/appointments/%s/%s", url.PathEscape(id), action)

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var dto appointmentDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("%w: failed to decode appointment: %v", ErrInvalidResponse, err)
	}
	if dto.ID == "" && dto.AltID == "" {
		return nil, nil
	}
	return dto.toDomain()
}
