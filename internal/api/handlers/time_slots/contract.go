package time_slots

import (
	"context"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// TimeSlotsClient операции pressing над своими créneaux
type TimeSlotsClient interface {
	CreateTimeSlot(ctx context.Context, pressingID string, input pressingapi.TimeSlotInput) (*domain.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, id string, input pressingapi.TimeSlotInput) (*domain.TimeSlot, error)
	ToggleBlockTimeSlot(ctx context.Context, id, reason string) (*domain.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, id string) error
	GetSlotStats(ctx context.Context, pressingID string, from, to time.Time) (*domain.SlotStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
