package search_pressings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных фильтрах
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstream возвращается, когда список pressings не удалось получить
	ErrUpstream = errors.New("failed to load pressings")
)
