package middleware

import (
	"context"
	"time"
)

// TokenSource сохраненные на шлюзе токены анонимных клиентов
type TokenSource interface {
	Token(ctx context.Context, owner string) (string, error)
}

// HTTPMetrics метрики HTTP-запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
