package domain

import (
	"time"

	"github.com/geopressci/pressing-gateway/pkg/types"
)

// SlotStatus статус créneau
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotFull      SlotStatus = "full"
	SlotBlocked   SlotStatus = "blocked"
	SlotClosed    SlotStatus = "closed"
)

// SlotType тип créneau
type SlotType string

const (
	SlotRegular SlotType = "regular"
	SlotExpress SlotType = "express"
	SlotPremium SlotType = "premium"
	SlotBulk    SlotType = "bulk"
)

// IsValidSlotType проверяет тип créneau
func IsValidSlotType(t SlotType) bool {
	switch t {
	case SlotRegular, SlotExpress, SlotPremium, SlotBulk:
		return true
	}
	return false
}

// TimeSlot временной слот pressing.
// Инвариант AvailableSpots = MaxCapacity - CurrentBookings поддерживается сервером.
type TimeSlot struct {
	ID              string
	PressingID      string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	MaxCapacity     int
	CurrentBookings int
	AvailableSpots  int
	Status          SlotStatus
	SlotType        SlotType
	SpecialPrice    *float64
	Discount        *float64
	IsBlocked       bool
	BlockReason     *string
}

// ComputedAvailableSpots свободные места по вместимости и числу записей
func (s *TimeSlot) ComputedAvailableSpots() int {
	spots := s.MaxCapacity - s.CurrentBookings
	if spots < 0 {
		return 0
	}
	return spots
}

// IsBookable можно ли записаться в слот
func (s *TimeSlot) IsBookable() bool {
	return s.Status == SlotAvailable && !s.IsBlocked && s.AvailableSpots > 0
}

// IsFull returns true if the slot has no available spots
func (s *TimeSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *TimeSlot) OccupancyRate() float64 {
	if s.MaxCapacity == 0 {
		return 0
	}
	return float64(s.CurrentBookings) / float64(s.MaxCapacity) * 100
}

// StartsAt дата и время начала слота
func (s *TimeSlot) StartsAt() (time.Time, error) {
	return s.StartTime.OnDate(s.Date)
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет время суток
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SlotStats статистика загрузки créneaux pressing
type SlotStats struct {
	TotalSlots     int     `json:"totalSlots"`
	AvailableSlots int     `json:"availableSlots"`
	FullSlots      int     `json:"fullSlots"`
	BlockedSlots   int     `json:"blockedSlots"`
	TotalCapacity  int     `json:"totalCapacity"`
	TotalBookings  int     `json:"totalBookings"`
	OccupancyRate  float64 `json:"occupancyRate"`
}
