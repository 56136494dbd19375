package preferences

import "errors"

var (
	// ErrNoOwner возвращается, когда владелец данных не определен
	ErrNoOwner = errors.New("preferences: owner is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("preferences: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("preferences: internal error")
)
