package models

import (
	"errors"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListRequest фильтры списка записей
type ListRequest struct {
	Status     *string    `json:"status,omitempty"`
	PressingID string     `json:"pressingId,omitempty"`
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
}

// ToFilter конвертирует request в фильтр API
func (r *ListRequest) ToFilter() (pressingapi.AppointmentFilter, error) {
	filter := pressingapi.AppointmentFilter{
		PressingID: r.PressingID,
		From:       r.From,
		To:         r.To,
	}

	if r.Status != nil {
		status, ok := domain.ParseAppointmentStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	Reason string `json:"reason"`
}

// RescheduleRequest запрос на перенос записи
type RescheduleRequest struct {
	NewTimeSlotID string    `json:"newTimeSlotId"`
	NewDate       time.Time `json:"newDate"`
	Reason        string    `json:"reason,omitempty"`
}

// Response модели

// AppointmentResponse запись с вычисленными полями для интерфейса
type AppointmentResponse struct {
	ID              string               `json:"id"`
	ClientID        string               `json:"clientId,omitempty"`
	PressingID      string               `json:"pressingId"`
	PressingName    string               `json:"pressingName,omitempty"`
	TimeSlotID      string               `json:"timeSlotId,omitempty"`
	Services        []domain.ServiceLine `json:"services"`
	Status          string               `json:"status"`
	AppointmentDate time.Time            `json:"appointmentDate"`
	TotalAmount     float64              `json:"totalAmount"`
	PickupAddress   *domain.Address      `json:"pickupAddress,omitempty"`
	DeliveryAddress *domain.Address      `json:"deliveryAddress,omitempty"`
	Notes           *string              `json:"notes,omitempty"`

	Cancellation      *domain.Cancellation     `json:"cancellation,omitempty"`
	RescheduleHistory []domain.RescheduleEntry `json:"rescheduleHistory,omitempty"`

	// Вычисляемые поля
	StatusLabel   string `json:"statusLabel"`
	TimeUntil     string `json:"timeUntil"`
	CanCancel     bool   `json:"canCancel"`
	CanReschedule bool   `json:"canReschedule"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO на момент now
func FromDomainAppointment(a *domain.Appointment, now time.Time) *AppointmentResponse {
	if a == nil {
		return nil
	}

	services := a.Services
	if services == nil {
		services = []domain.ServiceLine{}
	}

	_, timeUntil := a.TimeUntil(now)

	return &AppointmentResponse{
		ID:                a.ID,
		ClientID:          a.ClientID,
		PressingID:        a.PressingID,
		PressingName:      a.PressingName,
		TimeSlotID:        a.TimeSlotID,
		Services:          services,
		Status:            string(a.Status),
		AppointmentDate:   a.AppointmentDate,
		TotalAmount:       a.TotalAmount,
		PickupAddress:     a.PickupAddress,
		DeliveryAddress:   a.DeliveryAddress,
		Notes:             a.Notes,
		Cancellation:      a.Cancellation,
		RescheduleHistory: a.RescheduleHistory,
		StatusLabel:       domain.StatusLabel(a.Status),
		TimeUntil:         timeUntil,
		CanCancel:         a.CanBeCancelled(now),
		CanReschedule:     a.CanBeRescheduled(now),
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// FromDomainAppointments конвертирует список
func FromDomainAppointments(list []*domain.Appointment, now time.Time) *AppointmentListResponse {
	resp := &AppointmentListResponse{Appointments: make([]AppointmentResponse, 0, len(list))}
	for _, a := range list {
		if a == nil {
			continue
		}
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a, now))
	}
	return resp
}
