package booking

import (
	"errors"
)

var (
	// ErrDraftNotFound возвращается, когда черновика нет у владельца
	ErrDraftNotFound = errors.New("booking draft not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCannotProceed возвращается, когда текущий шаг не заполнен
	ErrCannotProceed = errors.New("current step is incomplete")

	// ErrInvalidStep возвращается при переходе, недопустимом с текущего шага
	ErrInvalidStep = errors.New("invalid step transition")

	// ErrNoSlot возвращается, когда créneau не выбран
	ErrNoSlot = errors.New("no time slot selected")

	// ErrNoPickupAddress возвращается, когда адрес забора пуст
	ErrNoPickupAddress = errors.New("pickup address is required")

	// ErrNoServices возвращается, когда в заказе нет услуг
	ErrNoServices = errors.New("at least one service is required")

	// ErrSubmissionInFlight возвращается, пока предыдущая отправка не завершена
	ErrSubmissionInFlight = errors.New("booking submission already in progress")

	// ErrAlreadySubmitted возвращается при повторной отправке подтвержденного черновика
	ErrAlreadySubmitted = errors.New("booking already submitted")

	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("booking: internal error")
)

// SubmitError ошибка создания записи с сообщением для пользователя
type SubmitError struct {
	Message string
	cause   error
}

func (e *SubmitError) Error() string {
	return "booking submission failed: " + e.Message
}

func (e *SubmitError) Unwrap() error {
	return e.cause
}
