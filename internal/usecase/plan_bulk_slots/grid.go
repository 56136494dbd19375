package plan_bulk_slots

import (
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/pkg/types"
)

// generateDayGrid генерирует начала créneaux с открытия с фиксированным шагом slotDuration.
// Последний créneau заканчивается не позже закрытия.
func generateDayGrid(openTime, closeTime types.TimeString, slotDuration int) []types.TimeString {
	grid := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(slotDuration)
		if err != nil {
			// créneau переходит через полночь
			break
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		grid = append(grid, current)
		current = slotEnd
	}

	return grid
}

// planDays раскладывает сетку по дням диапазона с учетом дней недели и исключений
func planDays(req *Request, grid []types.TimeString) []DayPlan {
	weekdays := make(map[time.Weekday]bool, len(req.DaysOfWeek))
	for _, d := range req.DaysOfWeek {
		weekdays[d] = true
	}

	excluded := make(map[string]bool, len(req.ExcludeDates))
	for _, d := range req.ExcludeDates {
		excluded[d.Format(domain.DateFormat)] = true
	}

	end := domain.DateOnly(req.EndDate)
	days := make([]DayPlan, 0)
	for day := domain.DateOnly(req.StartDate); !day.After(end); day = day.AddDate(0, 0, 1) {
		if len(weekdays) > 0 && !weekdays[day.Weekday()] {
			continue
		}
		if excluded[day.Format(domain.DateFormat)] {
			continue
		}

		starts := make([]types.TimeString, len(grid))
		copy(starts, grid)
		days = append(days, DayPlan{Date: day, Starts: starts})
	}

	return days
}
