package load_available_slots

import (
	"context"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// SlotsClient интерфейс клиента API маркетплейса
type SlotsClient interface {
	GetAvailableSlots(ctx context.Context, pressingID string, date time.Time) ([]*domain.TimeSlot, error)
}

// MetricsRecorder счетчик подстановки слотов по умолчанию
type MetricsRecorder interface {
	IncSlotFallback(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
