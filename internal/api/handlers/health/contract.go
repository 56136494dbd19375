package health

import "context"

// Checker проверка зависимости сервиса
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
