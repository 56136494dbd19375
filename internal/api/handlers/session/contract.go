package session

import "context"

// SessionStore токены клиентов, сохраненные на шлюзе
type SessionStore interface {
	Save(ctx context.Context, owner, token string) error
	Clear(ctx context.Context, owner string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
