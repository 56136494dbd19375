package pressingapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/pkg/types"
)

// CreateAppointmentRequest тело POST /appointments
type CreateAppointmentRequest struct {
	PressingID      string               `json:"pressing"`
	TimeSlotID      string               `json:"timeSlot"`
	AppointmentDate time.Time            `json:"appointmentDate"`
	Services        []domain.ServiceLine `json:"services"`
	PickupAddress   *domain.Address      `json:"pickupAddress,omitempty"`
	DeliveryAddress *domain.Address      `json:"deliveryAddress,omitempty"`
	Notes           *string              `json:"notes,omitempty"`
	TotalAmount     float64              `json:"totalAmount"`
}

// RescheduleRequest тело PATCH /appointments/:id/reschedule
type RescheduleRequest struct {
	NewTimeSlotID string    `json:"newTimeSlot"`
	NewDate       time.Time `json:"newDate"`
	Reason        string    `json:"reason,omitempty"`
}

// AppointmentFilter параметры GET /appointments
type AppointmentFilter struct {
	Status     *domain.AppointmentStatus
	PressingID string
	From       *time.Time
	To         *time.Time
}

// TimeSlotInput создание/изменение créneau
type TimeSlotInput struct {
	Date         string          `json:"date"`
	StartTime    string          `json:"startTime"`
	EndTime      string          `json:"endTime"`
	MaxCapacity  int             `json:"maxCapacity"`
	SlotType     domain.SlotType `json:"slotType,omitempty"`
	SpecialPrice *float64        `json:"specialPrice,omitempty"`
	Discount     *float64        `json:"discount,omitempty"`
}

// BulkTimeSlotsInput тело POST /pressings/:id/bulk-time-slots
type BulkTimeSlotsInput struct {
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	DaysOfWeek   []int           `json:"daysOfWeek"`
	StartTime    string          `json:"startTime"`
	EndTime      string          `json:"endTime"`
	SlotDuration int             `json:"slotDuration"`
	MaxCapacity  int             `json:"maxCapacity"`
	SlotType     domain.SlotType `json:"slotType,omitempty"`
	ExcludeDates []string        `json:"excludeDates,omitempty"`
}

// BulkTimeSlotsResult ответ на массовое создание
type BulkTimeSlotsResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// NearbyQuery параметры GET /pressings
type NearbyQuery struct {
	Position *domain.Coordinates
	RadiusKm float64
	Limit    int
}

// ref ссылка на документ: строка-ID или вложенный объект
type ref struct {
	ID   string
	Name string
}

func (r *ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = firstString(obj, "_id", "id")
	r.Name = firstString(obj, "nom", "name", "businessName")
	return nil
}

type serviceLineDTO struct {
	Service    ref     `json:"service"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

type addressDTO struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
}

func (a *addressDTO) toDomain() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Street: a.Street,
		City:   a.City,
		Coordinates: domain.Coordinates{
			Latitude:  a.Coordinates.Latitude,
			Longitude: a.Coordinates.Longitude,
		},
	}
}

type appointmentDTO struct {
	ID              string           `json:"_id"`
	AltID           string           `json:"id"`
	Client          ref              `json:"client"`
	Pressing        ref              `json:"pressing"`
	TimeSlot        ref              `json:"timeSlot"`
	Services        []serviceLineDTO `json:"services"`
	Status          string           `json:"status"`
	AppointmentDate string           `json:"appointmentDate"`
	TotalAmount     float64          `json:"totalAmount"`
	PickupAddress   *addressDTO      `json:"pickupAddress"`
	DeliveryAddress *addressDTO      `json:"deliveryAddress"`
	Notes           *string          `json:"notes"`
	Cancellation    *struct {
		Reason      string `json:"reason"`
		CancelledBy string `json:"cancelledBy"`
		CancelledAt string `json:"cancelledAt"`
	} `json:"cancellation"`
	RescheduleHistory []struct {
		FromDate      string `json:"fromDate"`
		ToDate        string `json:"toDate"`
		Reason        string `json:"reason"`
		RescheduledAt string `json:"rescheduledAt"`
	} `json:"rescheduleHistory"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (d *appointmentDTO) toDomain() (*domain.Appointment, error) {
	date, err := parseTime(d.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: appointmentDate: %v", ErrInvalidResponse, err)
	}

	a := &domain.Appointment{
		ID:              firstNonEmpty(d.ID, d.AltID),
		ClientID:        d.Client.ID,
		PressingID:      d.Pressing.ID,
		PressingName:    d.Pressing.Name,
		TimeSlotID:      d.TimeSlot.ID,
		Status:          domain.AppointmentStatus(d.Status),
		AppointmentDate: date,
		TotalAmount:     d.TotalAmount,
		PickupAddress:   d.PickupAddress.toDomain(),
		DeliveryAddress: d.DeliveryAddress.toDomain(),
		Notes:           d.Notes,
	}

	a.Services = make([]domain.ServiceLine, 0, len(d.Services))
	for _, s := range d.Services {
		line := domain.ServiceLine{
			ServiceID:  s.Service.ID,
			Name:       firstNonEmpty(s.Name, s.Service.Name),
			Quantity:   s.Quantity,
			UnitPrice:  s.UnitPrice,
			TotalPrice: s.TotalPrice,
		}
		if line.TotalPrice == 0 {
			line.TotalPrice = float64(line.Quantity) * line.UnitPrice
		}
		a.Services = append(a.Services, line)
	}
	if a.TotalAmount == 0 {
		a.TotalAmount = a.ComputeTotal()
	}

	if d.Cancellation != nil {
		cancelledAt, _ := parseTime(d.Cancellation.CancelledAt)
		a.Cancellation = &domain.Cancellation{
			Reason:      d.Cancellation.Reason,
			CancelledBy: d.Cancellation.CancelledBy,
			CancelledAt: cancelledAt,
		}
	}

	for _, h := range d.RescheduleHistory {
		from, _ := parseTime(h.FromDate)
		to, _ := parseTime(h.ToDate)
		at, _ := parseTime(h.RescheduledAt)
		a.RescheduleHistory = append(a.RescheduleHistory, domain.RescheduleEntry{
			FromDate:      from,
			ToDate:        to,
			Reason:        h.Reason,
			RescheduledAt: at,
		})
	}

	a.CreatedAt, _ = parseTime(d.CreatedAt)
	a.UpdatedAt, _ = parseTime(d.UpdatedAt)

	return a, nil
}

type timeSlotDTO struct {
	ID              string   `json:"_id"`
	AltID           string   `json:"id"`
	Pressing        ref      `json:"pressing"`
	Date            string   `json:"date"`
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	MaxCapacity     int      `json:"maxCapacity"`
	CurrentBookings int      `json:"currentBookings"`
	AvailableSpots  *int     `json:"availableSpots"`
	Status          string   `json:"status"`
	SlotType        string   `json:"slotType"`
	SpecialPrice    *float64 `json:"specialPrice"`
	Discount        *float64 `json:"discount"`
	IsBlocked       bool     `json:"isBlocked"`
	BlockReason     *string  `json:"blockReason"`
}

func (d *timeSlotDTO) toDomain() (*domain.TimeSlot, error) {
	date, err := parseTime(d.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: slot date: %v", ErrInvalidResponse, err)
	}
	start, err := types.NewTimeStringFromString(d.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: slot startTime: %v", ErrInvalidResponse, err)
	}

	slot := &domain.TimeSlot{
		ID:              firstNonEmpty(d.ID, d.AltID),
		PressingID:      d.Pressing.ID,
		Date:            domain.DateOnly(date),
		StartTime:       start,
		MaxCapacity:     d.MaxCapacity,
		CurrentBookings: d.CurrentBookings,
		Status:          domain.SlotStatus(d.Status),
		SlotType:        domain.SlotType(d.SlotType),
		SpecialPrice:    d.SpecialPrice,
		Discount:        d.Discount,
		IsBlocked:       d.IsBlocked,
		BlockReason:     d.BlockReason,
	}

	if d.EndTime != "" {
		end, err := types.NewTimeStringFromString(d.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: slot endTime: %v", ErrInvalidResponse, err)
		}
		slot.EndTime = end
	}

	if d.AvailableSpots != nil {
		slot.AvailableSpots = *d.AvailableSpots
	} else {
		slot.AvailableSpots = slot.ComputedAvailableSpots()
	}
	if slot.Status == "" {
		slot.Status = domain.SlotAvailable
	}
	if slot.SlotType == "" {
		slot.SlotType = domain.SlotRegular
	}

	return slot, nil
}

// parseTime разбирает ISO-8601 с временем или просто дату
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(domain.DateFormat, s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
