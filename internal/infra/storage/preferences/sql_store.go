package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/geopressci/pressing-gateway/pkg/psqlbuilder"
)

const tableName = "kv_store"

const createTableQuery = `CREATE TABLE IF NOT EXISTS kv_store (
	owner      VARCHAR(128) NOT NULL,
	key        VARCHAR(128) NOT NULL,
	value      TEXT         NOT NULL,
	updated_at TIMESTAMP    NOT NULL,
	PRIMARY KEY (owner, key)
)`

// SQLStore хранилище предпочтений в таблице kv_store (sqlite или postgres)
type SQLStore struct {
	db      DBExecutor
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

// NewSQLStore создает хранилище; driver определяет формат плейсхолдеров
func NewSQLStore(db DBExecutor, driver string) *SQLStore {
	return &SQLStore{
		db:      db,
		builder: psqlbuilder.ForDriver(driver),
		now:     time.Now,
	}
}

// Migrate создает таблицу kv_store, если ее нет
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("%w: Migrate - create table: %v", ErrExecQuery, err)
	}
	return nil
}

// Get возвращает значение ключа владельца
func (s *SQLStore) Get(ctx context.Context, owner, key string) (string, error) {
	if owner == "" || key == "" {
		return "", ErrInvalidKey
	}

	query, args, err := s.builder.Select("value").
		From(tableName).
		Where(squirrel.Eq{"owner": owner, "key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Get - scan value: %v", ErrScanRow, err)
	}

	return value, nil
}

// Set записывает значение (upsert по owner+key)
func (s *SQLStore) Set(ctx context.Context, owner, key, value string) error {
	if owner == "" || key == "" {
		return ErrInvalidKey
	}

	query, args, err := s.builder.Insert(tableName).
		Columns("owner", "key", "value", "updated_at").
		Values(owner, key, value, s.now().UTC()).
		Suffix("ON CONFLICT (owner, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет ключ; отсутствие ключа не ошибка
func (s *SQLStore) Delete(ctx context.Context, owner, key string) error {
	if owner == "" || key == "" {
		return ErrInvalidKey
	}

	query, args, err := s.builder.Delete(tableName).
		Where(squirrel.Eq{"owner": owner, "key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
