package booking_drafts

import (
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/usecase/booking"
)

// CreateDraftRequest HTTP request model
type CreateDraftRequest struct {
	PressingID string               `json:"pressingId"`
	Services   []domain.ServiceLine `json:"services"`
	Notes      string               `json:"notes,omitempty"`
}

func (r *CreateDraftRequest) ToInput() booking.CreateDraftInput {
	return booking.CreateDraftInput{
		PressingID: r.PressingID,
		Services:   r.Services,
		Notes:      r.Notes,
	}
}

// SlotRequest выбранный créneau из списка доступных
type SlotRequest struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SelectSlotRequest HTTP request model; slot может отсутствовать, если выбран только день
type SelectSlotRequest struct {
	Date string       `json:"date"`
	Slot *SlotRequest `json:"slot,omitempty"`
}

// ToInput разбирает дату YYYY-MM-DD
func (r *SelectSlotRequest) ToInput() (booking.SelectSlotInput, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return booking.SelectSlotInput{}, err
	}

	input := booking.SelectSlotInput{Date: date}
	if r.Slot != nil {
		input.Slot = &booking.SelectedSlot{
			ID:        r.Slot.ID,
			Date:      date,
			StartTime: r.Slot.StartTime,
			EndTime:   r.Slot.EndTime,
		}
	}
	return input, nil
}

// AddressRequest HTTP request model
type AddressRequest struct {
	Pickup       domain.Address  `json:"pickupAddress"`
	Delivery     *domain.Address `json:"deliveryAddress,omitempty"`
	SameAsPickup bool            `json:"sameAsPickup"`
}

func (r *AddressRequest) ToInput() booking.AddressInput {
	return booking.AddressInput{
		Pickup:       r.Pickup,
		Delivery:     r.Delivery,
		SameAsPickup: r.SameAsPickup,
	}
}

// StepRequest HTTP request model
type StepRequest struct {
	Direction booking.Direction `json:"direction"`
}

// DraftResponse черновик и состояние мастера
type DraftResponse struct {
	*booking.Draft

	Steps       []booking.Step `json:"steps"`
	CanProceed  bool           `json:"canProceed"`
	TotalAmount float64        `json:"totalAmount"`
}

// FromDraft добавляет к черновику вычисляемые поля мастера
func FromDraft(draft *booking.Draft, opts booking.Options) *DraftResponse {
	w := booking.NewWizard(draft, opts)
	return &DraftResponse{
		Draft:       draft,
		Steps:       w.Steps(),
		CanProceed:  w.CanProceed(),
		TotalAmount: draft.TotalAmount(),
	}
}
