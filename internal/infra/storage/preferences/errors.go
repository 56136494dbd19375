package preferences

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключа нет у владельца
	ErrKeyNotFound = errors.New("preferences.store: key not found")

	// ErrInvalidKey возвращается при пустом владельце или ключе
	ErrInvalidKey = errors.New("preferences.store: owner and key are required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("preferences.store: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("preferences.store: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("preferences.store: failed to scan row")

	// ErrRedis возвращается при ошибке Redis
	ErrRedis = errors.New("preferences.store: redis error")
)
