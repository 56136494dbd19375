package bulk_time_slots

import (
	"fmt"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/usecase/plan_bulk_slots"
	"github.com/geopressci/pressing-gateway/pkg/types"
)

// BulkTimeSlotsRequest HTTP request model
type BulkTimeSlotsRequest struct {
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	DaysOfWeek   []int    `json:"daysOfWeek,omitempty"` // 0 = воскресенье
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	SlotDuration int      `json:"slotDuration"`
	MaxCapacity  int      `json:"maxCapacity"`
	SlotType     string   `json:"slotType,omitempty"`
	ExcludeDates []string `json:"excludeDates,omitempty"`
	DryRun       bool     `json:"dryRun,omitempty"`
}

// ToUseCaseRequest разбирает даты; остальная валидация в use case
func (r *BulkTimeSlotsRequest) ToUseCaseRequest(pressingID string) (*plan_bulk_slots.Request, error) {
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", r.EndDate)
	if err != nil {
		return nil, err
	}

	excluded := make([]time.Time, 0, len(r.ExcludeDates))
	for _, raw := range r.ExcludeDates {
		d, err := parseDate("excludeDates", raw)
		if err != nil {
			return nil, err
		}
		excluded = append(excluded, d)
	}

	days := make([]time.Weekday, 0, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		days = append(days, time.Weekday(d))
	}

	return &plan_bulk_slots.Request{
		PressingID:   pressingID,
		StartDate:    start,
		EndDate:      end,
		DaysOfWeek:   days,
		OpenTime:     types.TimeString(r.StartTime),
		CloseTime:    types.TimeString(r.EndTime),
		SlotDuration: r.SlotDuration,
		MaxCapacity:  r.MaxCapacity,
		SlotType:     domain.SlotType(r.SlotType),
		ExcludeDates: excluded,
		DryRun:       r.DryRun,
	}, nil
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: expected YYYY-MM-DD", plan_bulk_slots.ErrInvalidInput, field)
	}
	return t, nil
}

// DayPlanResponse créneaux одного дня
type DayPlanResponse struct {
	Date   string   `json:"date"`
	Starts []string `json:"starts"`
}

// BulkTimeSlotsResponse HTTP response model
type BulkTimeSlotsResponse struct {
	PressingID string            `json:"pressingId"`
	Days       []DayPlanResponse `json:"days"`
	TotalSlots int               `json:"totalSlots"`
	Submitted  bool              `json:"submitted"`
	Created    int               `json:"created"`
	Skipped    int               `json:"skipped"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP-модель
func FromUseCaseResponse(resp *plan_bulk_slots.Response) BulkTimeSlotsResponse {
	days := make([]DayPlanResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		starts := make([]string, 0, len(d.Starts))
		for _, s := range d.Starts {
			starts = append(starts, s.String())
		}
		days = append(days, DayPlanResponse{
			Date:   d.Date.Format(domain.DateFormat),
			Starts: starts,
		})
	}

	return BulkTimeSlotsResponse{
		PressingID: resp.PressingID,
		Days:       days,
		TotalSlots: resp.TotalSlots,
		Submitted:  resp.Submitted,
		Created:    resp.Created,
		Skipped:    resp.Skipped,
	}
}
