package get_appointment_stats

import (
	"context"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

type AppointmentService interface {
	Stats(ctx context.Context) (*domain.AppointmentStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
