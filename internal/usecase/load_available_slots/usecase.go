package load_available_slots

import (
	"context"
	"sort"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
)

// UseCase загрузка créneaux pressing на дату.
// Ошибки API не возвращаются: вместо них подставляются слоты по умолчанию.
type UseCase struct {
	client  SlotsClient
	metrics MetricsRecorder
	logger  Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(client SlotsClient, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute выполняет use case загрузки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("LoadAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("LoadAvailableSlots: pressing=%s, date=%s", req.PressingID, date.Format(domain.DateFormat))

	slots, err := uc.client.GetAvailableSlots(ctx, req.PressingID, date)
	if err != nil {
		uc.logger.Warn("LoadAvailableSlots: upstream failed for pressing=%s, using default slots: %v", req.PressingID, err)
		return uc.fallback(req.PressingID, date, FallbackUpstreamError, NoticeUpstreamUnavailable), nil
	}

	if len(slots) == 0 {
		uc.logger.Info("LoadAvailableSlots: no slots published for pressing=%s, using default slots", req.PressingID)
		return uc.fallback(req.PressingID, date, FallbackEmpty, NoticeNothingPublished), nil
	}

	bookable := make([]*domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if !domain.SameDay(slot.Date, date) {
			continue
		}
		if computed := slot.ComputedAvailableSpots(); slot.AvailableSpots != computed {
			uc.logger.Warn("LoadAvailableSlots: slot=%s availableSpots=%d disagrees with capacity %d-%d, using %d",
				slot.ID, slot.AvailableSpots, slot.MaxCapacity, slot.CurrentBookings, computed)
			slot.AvailableSpots = computed
		}
		if slot.IsBookable() {
			bookable = append(bookable, slot)
		}
	}

	sort.SliceStable(bookable, func(i, j int) bool {
		return bookable[i].StartTime.IsBefore(bookable[j].StartTime)
	})

	resp := &Response{
		PressingID: req.PressingID,
		Date:       date,
		Slots:      bookable,
		Source:     SourceAPI,
	}
	if len(bookable) == 0 {
		resp.NoSlots = true
		resp.Notice = NoticeNoSlots
	}

	uc.logger.Info("LoadAvailableSlots: pressing=%s, date=%s, received=%d, bookable=%d",
		req.PressingID, date.Format(domain.DateFormat), len(slots), len(bookable))
	return resp, nil
}

func (uc *UseCase) fallback(pressingID string, date time.Time, reason, notice string) *Response {
	if uc.metrics != nil {
		uc.metrics.IncSlotFallback(reason)
	}
	return &Response{
		PressingID: pressingID,
		Date:       date,
		Slots:      defaultSlots(pressingID, date),
		Source:     SourceFallback,
		Notice:     notice,
	}
}
