package plan_bulk_slots

import (
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/pkg/types"
)

// Ограничения массового создания créneaux
const (
	MaxRangeDays       = 90
	MinSlotDuration    = 15
	MaxSlotDuration    = 240
	MaxCapacityPerSlot = domain.MaxSlotCapacity
)

// Request модель запроса на массовое создание créneaux
type Request struct {
	PressingID   string
	StartDate    time.Time
	EndDate      time.Time        // включительно
	DaysOfWeek   []time.Weekday   // пусто = все дни
	OpenTime     types.TimeString // начало первого créneau
	CloseTime    types.TimeString // créneau не может заканчиваться позже
	SlotDuration int              // минуты
	MaxCapacity  int
	SlotType     domain.SlotType // пусто = regular
	ExcludeDates []time.Time
	DryRun       bool
}

// DayPlan créneaux одного дня
type DayPlan struct {
	Date   time.Time
	Starts []types.TimeString
}

// Response модель ответа
type Response struct {
	PressingID string
	Days       []DayPlan
	TotalSlots int
	Submitted  bool
	Created    int
	Skipped    int
}
