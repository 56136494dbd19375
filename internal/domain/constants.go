package domain

import (
	"time"

	"github.com/geopressci/pressing-gateway/pkg/types"
)

// Бизнес-правила записи
const (
	// CancellationWindow минимальный запас времени до записи для отмены/переноса
	CancellationWindow = 2 * time.Hour

	// DefaultSlotCapacity вместимость créneau по умолчанию
	DefaultSlotCapacity = 4

	// DefaultSlotDurationMinutes длительность créneau по умолчанию
	DefaultSlotDurationMinutes = 60

	// MaxSlotCapacity верхняя граница вместимости créneau
	MaxSlotCapacity = 50
)

// Поиск и геолокация
const (
	SearchDebounce     = 300 * time.Millisecond
	GeolocationTimeout = 15 * time.Second
	MaxRecentSearches  = 10
)

// Ключи хранилища предпочтений (совпадают с ключами localStorage веб-клиента)
const (
	FavoritesKey      = "pressing-favorites"
	RecentSearchesKey = "pressing-searches"
	AccessTokenKey    = "geopressci_access_token"
	LegacyTokenKey    = "authToken"
	BookingDraftKey   = "booking-draft"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AbidjanCenter точка по умолчанию, когда позиция пользователя неизвестна
var AbidjanCenter = Coordinates{Latitude: 5.3600, Longitude: -4.0083}

// DefaultSlotStarts начала créneaux, подставляемых при недоступности API:
// два утренних и два дневных
var DefaultSlotStarts = []types.TimeString{"09:00", "10:00", "14:00", "15:00"}
