package mapbox

import "errors"

var (
	// ErrDisabled возвращается, когда токен Mapbox не настроен
	ErrDisabled = errors.New("mapbox: access token is not configured")

	// ErrNoResults возвращается, когда геокодер ничего не нашел
	ErrNoResults = errors.New("mapbox: no results")

	// ErrNoRoute возвращается, когда маршрут не построен
	ErrNoRoute = errors.New("mapbox: no route found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mapbox client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mapbox client: invalid response")
)
