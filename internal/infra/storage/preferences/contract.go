package preferences

import (
	"context"
	"database/sql"
)

// Store порт key-value хранилища предпочтений.
// Данные разделены по владельцу (sub токена или X-Client-ID).
type Store interface {
	Get(ctx context.Context, owner, key string) (string, error)
	Set(ctx context.Context, owner, key, value string) error
	Delete(ctx context.Context, owner, key string) error
}

// DBExecutor интерфейс для выполнения SQL запросов.
// Поддерживает *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
