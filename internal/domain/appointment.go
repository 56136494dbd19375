package domain

import (
	"fmt"
	"math"
	"time"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

var statusLabels = map[AppointmentStatus]string{
	StatusPending:    "En attente",
	StatusConfirmed:  "Confirmé",
	StatusInProgress: "En cours",
	StatusCompleted:  "Terminé",
	StatusCancelled:  "Annulé",
	StatusNoShow:     "Absent",
}

// StatusLabel возвращает подпись статуса для интерфейса
func StatusLabel(status AppointmentStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// ParseAppointmentStatus валидирует строковый статус
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(s)
	_, ok := statusLabels[status]
	return status, ok
}

// Address адрес забора/доставки белья
type Address struct {
	Street      string      `json:"street"`
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
}

// ServiceLine позиция заказа
type ServiceLine struct {
	ServiceID  string  `json:"service"`
	Name       string  `json:"name,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Cancellation сведения об отмене
type Cancellation struct {
	Reason      string    `json:"reason,omitempty"`
	CancelledBy string    `json:"cancelledBy,omitempty"`
	CancelledAt time.Time `json:"cancelledAt"`
}

// RescheduleEntry запись истории переносов
type RescheduleEntry struct {
	FromDate      time.Time `json:"fromDate"`
	ToDate        time.Time `json:"toDate"`
	Reason        string    `json:"reason,omitempty"`
	RescheduledAt time.Time `json:"rescheduledAt"`
}

// Appointment запись клиента в pressing.
// Владелец данных API маркетплейса, здесь хранится только копия.
type Appointment struct {
	ID                string
	ClientID          string
	PressingID        string
	PressingName      string
	TimeSlotID        string
	Services          []ServiceLine
	Status            AppointmentStatus
	AppointmentDate   time.Time
	TotalAmount       float64
	PickupAddress     *Address
	DeliveryAddress   *Address
	Notes             *string
	Cancellation      *Cancellation
	RescheduleHistory []RescheduleEntry
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ComputeTotal сумма по позициям заказа
func (a *Appointment) ComputeTotal() float64 {
	return SumServiceLines(a.Services)
}

// CanBeCancelled отмена запрещена для завершенных/отмененных записей
// и когда до записи осталось не больше CancellationWindow
func (a *Appointment) CanBeCancelled(now time.Time) bool {
	if a.Status == StatusCompleted || a.Status == StatusCancelled {
		return false
	}
	return a.AppointmentDate.Sub(now) > CancellationWindow
}

// CanBeRescheduled то же окно, что и для отмены; дополнительно нельзя
// переносить уже начатую запись или неявку
func (a *Appointment) CanBeRescheduled(now time.Time) bool {
	switch a.Status {
	case StatusCompleted, StatusCancelled, StatusInProgress, StatusNoShow:
		return false
	}
	return a.AppointmentDate.Sub(now) > CancellationWindow
}

// TimeUntil время до записи и его подпись
func (a *Appointment) TimeUntil(now time.Time) (time.Duration, string) {
	d := a.AppointmentDate.Sub(now)
	return d, FormatTimeUntil(d)
}

// FormatTimeUntil "dans 2 jours", "dans 3 h 15 min", "dans 40 min", "passé"
func FormatTimeUntil(d time.Duration) string {
	if d <= 0 {
		return "passé"
	}

	if d >= 24*time.Hour {
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "dans 1 jour"
		}
		return fmt.Sprintf("dans %d jours", days)
	}

	if d >= time.Hour {
		hours := int(d / time.Hour)
		minutes := int((d % time.Hour) / time.Minute)
		if minutes == 0 {
			return fmt.Sprintf("dans %d h", hours)
		}
		return fmt.Sprintf("dans %d h %d min", hours, minutes)
	}

	minutes := int(math.Ceil(d.Minutes()))
	return fmt.Sprintf("dans %d min", minutes)
}

// NewServiceLine считает итог позиции
func NewServiceLine(serviceID, name string, quantity int, unitPrice float64) ServiceLine {
	return ServiceLine{
		ServiceID:  serviceID,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: float64(quantity) * unitPrice,
	}
}

// SumServiceLines Σ TotalPrice
func SumServiceLines(lines []ServiceLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.TotalPrice
	}
	return total
}

// AppointmentStats агрегаты, которые API отдает на /appointments/stats
type AppointmentStats struct {
	Total         int                       `json:"total"`
	ByStatus      map[AppointmentStatus]int `json:"byStatus"`
	Upcoming      int                       `json:"upcoming"`
	TotalRevenue  float64                   `json:"totalRevenue"`
	AverageAmount float64                   `json:"averageAmount"`
}
