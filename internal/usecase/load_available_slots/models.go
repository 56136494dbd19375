package load_available_slots

import (
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// Source происхождение списка слотов
type Source string

const (
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

// Причины подстановки слотов по умолчанию
const (
	FallbackUpstreamError = "upstream_error"
	FallbackEmpty         = "empty"
)

// Сообщения для пользователя
const (
	NoticeUpstreamUnavailable = "Créneaux par défaut affichés : le service de réservation est momentanément indisponible."
	NoticeNothingPublished    = "Aucun créneau publié pour cette date, créneaux par défaut proposés."
	NoticeNoSlots             = "Aucun créneau disponible pour cette date. Essayez un autre jour."
)

// Request модель запроса слотов pressing на дату
type Request struct {
	PressingID string
	Date       time.Time
}

// Response модель ответа; Slots отсортированы по времени начала
type Response struct {
	PressingID string
	Date       time.Time
	Slots      []*domain.TimeSlot
	Source     Source
	NoSlots    bool   // API вернул слоты, но ни один не подходит
	Notice     string // информационное сообщение, если есть
}
