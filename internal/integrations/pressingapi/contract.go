package pressingapi

import "context"

// SessionHandler реагирует на истекшую сессию (401 по закрытому пути)
type SessionHandler interface {
	OnUnauthorized(ctx context.Context)
}

// MetricsRecorder счетчик ответов 401
type MetricsRecorder interface {
	IncUpstreamUnauthorized()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type tokenKey struct{}

// WithToken кладет bearer-токен клиента в контекст запроса к API
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext токен из контекста, "" если его нет
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
