package get_available_slots

import (
	"time"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/domain"
	loadAvailableSlots "github.com/geopressci/pressing-gateway/internal/usecase/load_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string                      `json:"date"`
	PressingID string                      `json:"pressingId"`
	Source     string                      `json:"source"`
	NoSlots    bool                        `json:"noSlots"`
	Notice     string                      `json:"notice,omitempty"`
	Slots      []handlers.TimeSlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *loadAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		PressingID: resp.PressingID,
		Source:     string(resp.Source),
		NoSlots:    resp.NoSlots,
		Notice:     resp.Notice,
		Slots:      handlers.FromTimeSlots(resp.Slots),
	}
}

// ToUseCaseRequest создает запрос use case из параметров
func ToUseCaseRequest(pressingID, dateStr string) (*loadAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &loadAvailableSlots.Request{
		PressingID: pressingID,
		Date:       date,
	}, nil
}
