package bulk_time_slots

import (
	"context"

	"github.com/geopressci/pressing-gateway/internal/usecase/plan_bulk_slots"
)

// BulkSlotsPlanner интерфейс use case массового создания créneaux
type BulkSlotsPlanner interface {
	Execute(ctx context.Context, req *plan_bulk_slots.Request) (*plan_bulk_slots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
