package appointments

import (
	"context"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// AppointmentsClient интерфейс клиента API маркетплейса
type AppointmentsClient interface {
	ListAppointments(ctx context.Context, filter pressingapi.AppointmentFilter) ([]*domain.Appointment, error)
	ConfirmAppointment(ctx context.Context, id string) (*domain.Appointment, error)
	CancelAppointment(ctx context.Context, id, reason string) (*domain.Appointment, error)
	RescheduleAppointment(ctx context.Context, id string, req pressingapi.RescheduleRequest) (*domain.Appointment, error)
	CompleteAppointment(ctx context.Context, id string) (*domain.Appointment, error)
	AppointmentStats(ctx context.Context) (*domain.AppointmentStats, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
