package geolocation

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestInFlight запрос позиции уже выполняется
	ErrRequestInFlight = errors.New("geolocation: request already in flight")

	// ErrRetryNotAllowed повтор возможен только из состояния error
	ErrRetryNotAllowed = errors.New("geolocation: retry is only allowed after an error")
)

// ErrorCode коды ошибок Geolocation API браузера
type ErrorCode int

const (
	CodeUnknown             ErrorCode = 0
	CodePermissionDenied    ErrorCode = 1
	CodePositionUnavailable ErrorCode = 2
	CodeTimeout             ErrorCode = 3
)

var errorMessages = map[ErrorCode]string{
	CodePermissionDenied:    "Vous avez refusé l'accès à votre position. Activez la géolocalisation dans les paramètres de votre navigateur.",
	CodePositionUnavailable: "Votre position est actuellement indisponible. Vérifiez votre GPS ou votre connexion.",
	CodeTimeout:             "La demande de localisation a expiré. Veuillez réessayer.",
	CodeUnknown:             "Une erreur inconnue est survenue lors de la géolocalisation.",
}

// LocationError классифицированная ошибка получения позиции
type LocationError struct {
	Code  ErrorCode
	cause error
}

// NewLocationError создает ошибку с кодом; неизвестные коды сводятся к CodeUnknown
func NewLocationError(code ErrorCode, cause error) *LocationError {
	if _, ok := errorMessages[code]; !ok {
		code = CodeUnknown
	}
	return &LocationError{Code: code, cause: cause}
}

func (e *LocationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("geolocation: code %d: %v", e.Code, e.cause)
	}
	return fmt.Sprintf("geolocation: code %d", e.Code)
}

func (e *LocationError) Unwrap() error {
	return e.cause
}

// Message сообщение для пользователя
func (e *LocationError) Message() string {
	return errorMessages[e.Code]
}

// MessageFor сообщение по коду
func MessageFor(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return errorMessages[CodeUnknown]
}
