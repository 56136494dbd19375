package plan_bulk_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.PressingID) == "" {
		return fmt.Errorf("%w: pressingID is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidDateRange)
	}
	start := domain.DateOnly(req.StartDate)
	end := domain.DateOnly(req.EndDate)
	if end.Before(start) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidDateRange)
	}
	if start.Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: startDate is in the past", ErrInvalidDateRange)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days > MaxRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidDateRange, days, MaxRangeDays)
	}

	for _, d := range req.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: invalid day of week %d", ErrInvalidInput, d)
		}
	}

	if err := req.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: openTime: %v", ErrInvalidHours, err)
	}
	if err := req.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: closeTime: %v", ErrInvalidHours, err)
	}
	if !req.OpenTime.IsBefore(req.CloseTime) {
		return fmt.Errorf("%w: openTime %s must be before closeTime %s", ErrInvalidHours, req.OpenTime, req.CloseTime)
	}

	if req.SlotDuration < MinSlotDuration || req.SlotDuration > MaxSlotDuration {
		return fmt.Errorf("%w: slotDuration must be between %d and %d minutes", ErrInvalidInput, MinSlotDuration, MaxSlotDuration)
	}
	if req.MaxCapacity < 1 || req.MaxCapacity > MaxCapacityPerSlot {
		return fmt.Errorf("%w: maxCapacity must be between 1 and %d", ErrInvalidInput, MaxCapacityPerSlot)
	}
	if req.SlotType != "" && !domain.IsValidSlotType(req.SlotType) {
		return fmt.Errorf("%w: unknown slotType %q", ErrInvalidInput, req.SlotType)
	}

	return nil
}
