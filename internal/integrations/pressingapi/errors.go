package pressingapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized возвращается на 401
	ErrUnauthorized = errors.New("pressingapi: unauthorized")

	// ErrSessionExpired 401 по закрытому пути, сессия клиента очищена
	ErrSessionExpired = fmt.Errorf("%w: session expired", ErrUnauthorized)

	// ErrForbidden возвращается на 403
	ErrForbidden = errors.New("pressingapi: forbidden")

	// ErrNotFound возвращается на 404
	ErrNotFound = errors.New("pressingapi: not found")

	// ErrConflict возвращается на 409
	ErrConflict = errors.New("pressingapi: conflict")

	// ErrBadRequest возвращается на 400 и 422
	ErrBadRequest = errors.New("pressingapi: bad request")

	// ErrUpstream возвращается на 5xx и прочие неожиданные статусы
	ErrUpstream = errors.New("pressingapi: upstream error")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, сборка запроса)
	ErrInternal = errors.New("pressingapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном теле ответа
	ErrInvalidResponse = errors.New("pressingapi client: invalid response")
)

// GenericErrorMessage подпись по умолчанию, если сервер не прислал сообщение
const GenericErrorMessage = "Une erreur est survenue. Veuillez réessayer."

// APIError не-2xx ответ API маркетплейса
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string

	sessionExpired bool
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pressingapi: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("pressingapi: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized && e.sessionExpired:
		return ErrSessionExpired
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusConflict:
		return ErrConflict
	case e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		return ErrBadRequest
	default:
		return ErrUpstream
	}
}

// UserMessage сообщение сервера для показа пользователю или fallback
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if fallback == "" {
		return GenericErrorMessage
	}
	return fallback
}
