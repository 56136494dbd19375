package booking

import (
	"context"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// KVStore порт хранилища черновиков
type KVStore interface {
	Get(ctx context.Context, owner, key string) (string, error)
	Set(ctx context.Context, owner, key, value string) error
	Delete(ctx context.Context, owner, key string) error
}

// AppointmentCreator интерфейс клиента API маркетплейса
type AppointmentCreator interface {
	CreateAppointment(ctx context.Context, req pressingapi.CreateAppointmentRequest) (*domain.Appointment, error)
}

// MetricsRecorder счетчик отправок мастера
type MetricsRecorder interface {
	IncBookingSubmission(outcome string)
}

// CompletionFunc вызывается после успешного создания записи
type CompletionFunc func(ctx context.Context, owner string, appointment *domain.Appointment)

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
