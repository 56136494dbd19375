package booking

import (
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// Step шаг мастера записи
type Step string

const (
	StepDate         Step = "date"
	StepAddress      Step = "address"
	StepReview       Step = "review"
	StepConfirmation Step = "confirmation"
)

// Direction направление перехода между шагами
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionBack Direction = "back"
)

// Options настройки мастера.
// Без RequireAddress шаг адреса пропускается, а адрес в заявке необязателен.
type Options struct {
	RequireAddress bool
}

// SelectedSlot выбранный créneau
type SelectedSlot struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

// Draft состояние мастера записи, хранится в KV под booking-draft:<uuid>
type Draft struct {
	ID              string               `json:"id"`
	PressingID      string               `json:"pressingId"`
	Step            Step                 `json:"step"`
	SelectedDate    *time.Time           `json:"selectedDate,omitempty"`
	Slot            *SelectedSlot        `json:"slot,omitempty"`
	ScheduledAt     *time.Time           `json:"scheduledAt,omitempty"`
	PickupAddress   *domain.Address      `json:"pickupAddress,omitempty"`
	DeliveryAddress *domain.Address      `json:"deliveryAddress,omitempty"`
	SameAsPickup    bool                 `json:"sameAsPickup"`
	Services        []domain.ServiceLine `json:"services"`
	Notes           string               `json:"notes,omitempty"`
	Submitting      bool                 `json:"submitting"`
	AppointmentID   string               `json:"appointmentId,omitempty"`
	LastError       string               `json:"lastError,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// TotalAmount сумма по услугам черновика
func (d *Draft) TotalAmount() float64 {
	return domain.SumServiceLines(d.Services)
}

// CreateDraftInput данные для нового черновика
type CreateDraftInput struct {
	PressingID string
	Services   []domain.ServiceLine
	Notes      string
}

// SelectSlotInput выбор даты и créneau
type SelectSlotInput struct {
	Date time.Time
	Slot *SelectedSlot
}

// AddressInput адреса забора и доставки
type AddressInput struct {
	Pickup       domain.Address
	Delivery     *domain.Address
	SameAsPickup bool
}
