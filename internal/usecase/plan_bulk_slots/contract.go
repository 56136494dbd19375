package plan_bulk_slots

import (
	"context"
	"time"

	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// BulkSlotsClient интерфейс клиента API маркетплейса
type BulkSlotsClient interface {
	CreateBulkTimeSlots(ctx context.Context, pressingID string, input pressingapi.BulkTimeSlotsInput) (*pressingapi.BulkTimeSlotsResult, error)
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
