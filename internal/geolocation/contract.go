package geolocation

import (
	"context"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// Source откуда получена позиция
type Source string

const (
	SourceDevice     Source = "device"
	SourceIPFallback Source = "ip_fallback"
	SourceDefault    Source = "default"
)

// Position результат геолокации
type Position struct {
	Coordinates domain.Coordinates
	Accuracy    float64 // метры
	Source      Source
	Timestamp   time.Time
}

// PositionSource однократный запрос позиции
type PositionSource interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// MetricsRecorder счетчик исходов геолокации
type MetricsRecorder interface {
	IncGeolocationResult(source, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
