package get_available_slots

import (
	"context"

	loadAvailableSlots "github.com/geopressci/pressing-gateway/internal/usecase/load_available_slots"
)

type LoadAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *loadAvailableSlots.Request) (*loadAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
