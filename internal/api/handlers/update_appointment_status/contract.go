package update_appointment_status

import (
	"context"

	"github.com/geopressci/pressing-gateway/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id string) (*models.AppointmentResponse, error)
	Complete(ctx context.Context, id string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
