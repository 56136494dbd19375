package time_slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/pkg/types"
)

var errInvalidSlot = errors.New("invalid time slot")

// TimeSlotRequest HTTP request model
type TimeSlotRequest struct {
	Date         string   `json:"date"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	MaxCapacity  int      `json:"maxCapacity"`
	SlotType     string   `json:"slotType,omitempty"`
	SpecialPrice *float64 `json:"specialPrice,omitempty"`
	Discount     *float64 `json:"discount,omitempty"`
}

// ToInput проверяет запрос и конвертирует в тело API маркетплейса
func (r *TimeSlotRequest) ToInput() (pressingapi.TimeSlotInput, error) {
	var input pressingapi.TimeSlotInput

	if _, err := time.Parse(domain.DateFormat, r.Date); err != nil {
		return input, fmt.Errorf("%w: date: %v", errInvalidSlot, err)
	}

	start, end := types.TimeString(r.StartTime), types.TimeString(r.EndTime)
	if err := start.Validate(); err != nil {
		return input, fmt.Errorf("%w: startTime: %v", errInvalidSlot, err)
	}
	if err := end.Validate(); err != nil {
		return input, fmt.Errorf("%w: endTime: %v", errInvalidSlot, err)
	}
	if !start.IsBefore(end) {
		return input, fmt.Errorf("%w: startTime must be before endTime", errInvalidSlot)
	}

	if r.MaxCapacity <= 0 {
		r.MaxCapacity = domain.DefaultSlotCapacity
	}
	if r.MaxCapacity > domain.MaxSlotCapacity {
		return input, fmt.Errorf("%w: maxCapacity must be at most %d", errInvalidSlot, domain.MaxSlotCapacity)
	}

	slotType := domain.SlotType(r.SlotType)
	if slotType == "" {
		slotType = domain.SlotRegular
	}
	if !domain.IsValidSlotType(slotType) {
		return input, fmt.Errorf("%w: unknown slotType %q", errInvalidSlot, r.SlotType)
	}

	if r.Discount != nil && (*r.Discount < 0 || *r.Discount > 100) {
		return input, fmt.Errorf("%w: discount must be between 0 and 100", errInvalidSlot)
	}
	if r.SpecialPrice != nil && *r.SpecialPrice < 0 {
		return input, fmt.Errorf("%w: specialPrice must not be negative", errInvalidSlot)
	}

	return pressingapi.TimeSlotInput{
		Date:         r.Date,
		StartTime:    start.String(),
		EndTime:      end.String(),
		MaxCapacity:  r.MaxCapacity,
		SlotType:     slotType,
		SpecialPrice: r.SpecialPrice,
		Discount:     r.Discount,
	}, nil
}

// ToggleBlockRequest HTTP request model
type ToggleBlockRequest struct {
	Reason string `json:"reason,omitempty"`
}
