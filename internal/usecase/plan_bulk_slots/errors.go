package plan_bulk_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange возвращается, когда диапазон дат пуст, в прошлом или слишком длинный
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidHours возвращается, когда время открытия не раньше времени закрытия
	ErrInvalidHours = errors.New("invalid opening hours")

	// ErrEmptyPlan возвращается, когда по заданным параметрам не получается ни одного créneau
	ErrEmptyPlan = errors.New("plan produces no time slots")
)
