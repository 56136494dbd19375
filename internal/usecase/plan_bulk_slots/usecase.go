package plan_bulk_slots

import (
	"context"
	"fmt"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// UseCase предпросмотр и массовое создание créneaux pressing
type UseCase struct {
	client       BulkSlotsClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client BulkSlotsClient, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит сетку créneaux и, если это не DryRun, отправляет ее в API
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("PlanBulkSlots: validation failed: %v", err)
		return nil, err
	}

	grid := generateDayGrid(req.OpenTime, req.CloseTime, req.SlotDuration)

	days := planDays(req, grid)
	total := len(grid) * len(days)
	if total == 0 {
		uc.logger.Warn("PlanBulkSlots: pressing=%s, empty plan (grid=%d, days=%d)", req.PressingID, len(grid), len(days))
		return nil, ErrEmptyPlan
	}

	resp := &Response{
		PressingID: req.PressingID,
		Days:       days,
		TotalSlots: total,
	}

	if req.DryRun {
		uc.logger.Info("PlanBulkSlots: dry run pressing=%s, days=%d, slots=%d", req.PressingID, len(days), total)
		return resp, nil
	}

	result, err := uc.client.CreateBulkTimeSlots(ctx, req.PressingID, toInput(req))
	if err != nil {
		uc.logger.Error("PlanBulkSlots: failed to create slots for pressing=%s: %v", req.PressingID, err)
		return nil, fmt.Errorf("create bulk time slots: %w", err)
	}

	resp.Submitted = true
	resp.Created = result.Created
	resp.Skipped = result.Skipped

	uc.logger.Info("PlanBulkSlots: pressing=%s, planned=%d, created=%d, skipped=%d",
		req.PressingID, total, result.Created, result.Skipped)
	return resp, nil
}

func toInput(req *Request) pressingapi.BulkTimeSlotsInput {
	slotType := req.SlotType
	if slotType == "" {
		slotType = domain.SlotRegular
	}

	days := make([]int, 0, len(req.DaysOfWeek))
	for _, d := range req.DaysOfWeek {
		days = append(days, int(d))
	}
	if len(days) == 0 {
		days = []int{0, 1, 2, 3, 4, 5, 6}
	}

	excluded := make([]string, 0, len(req.ExcludeDates))
	for _, d := range req.ExcludeDates {
		excluded = append(excluded, d.Format(domain.DateFormat))
	}

	return pressingapi.BulkTimeSlotsInput{
		StartDate:    req.StartDate.Format(domain.DateFormat),
		EndDate:      req.EndDate.Format(domain.DateFormat),
		DaysOfWeek:   days,
		StartTime:    req.OpenTime.String(),
		EndTime:      req.CloseTime.String(),
		SlotDuration: req.SlotDuration,
		MaxCapacity:  req.MaxCapacity,
		SlotType:     slotType,
		ExcludeDates: excluded,
	}
}
