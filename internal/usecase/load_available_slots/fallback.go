package load_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// defaultSlots синтезирует créneaux по умолчанию: 09:00, 10:00, 14:00, 15:00 по часу
func defaultSlots(pressingID string, date time.Time) []*domain.TimeSlot {
	day := domain.DateOnly(date)
	slots := make([]*domain.TimeSlot, 0, len(domain.DefaultSlotStarts))

	for _, start := range domain.DefaultSlotStarts {
		end, err := start.AddMinutes(domain.DefaultSlotDurationMinutes)
		if err != nil {
			continue
		}

		slots = append(slots, &domain.TimeSlot{
			ID:              defaultSlotID(day, start.String()),
			PressingID:      pressingID,
			Date:            day,
			StartTime:       start,
			EndTime:         end,
			MaxCapacity:     domain.DefaultSlotCapacity,
			CurrentBookings: 0,
			AvailableSpots:  domain.DefaultSlotCapacity,
			Status:          domain.SlotAvailable,
			SlotType:        domain.SlotRegular,
		})
	}

	return slots
}

func defaultSlotID(day time.Time, start string) string {
	return fmt.Sprintf("default-%s-%s", day.Format(domain.DateFormat), strings.ReplaceAll(start, ":", ""))
}

// IsDefaultSlotID слот синтезирован шлюзом и отсутствует в API
func IsDefaultSlotID(id string) bool {
	return strings.HasPrefix(id, "default-")
}
