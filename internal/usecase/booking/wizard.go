package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/pkg/types"
)

// Wizard переходы и проверки мастера записи над черновиком
type Wizard struct {
	draft *Draft
	opts  Options
}

// NewWizard оборачивает черновик; пустой шаг считается первым
func NewWizard(draft *Draft, opts Options) *Wizard {
	if draft.Step == "" {
		draft.Step = StepDate
	}
	return &Wizard{draft: draft, opts: opts}
}

// Draft текущее состояние
func (w *Wizard) Draft() *Draft {
	return w.draft
}

// Steps последовательность шагов для текущих настроек
func (w *Wizard) Steps() []Step {
	if w.opts.RequireAddress {
		return []Step{StepDate, StepAddress, StepReview, StepConfirmation}
	}
	return []Step{StepDate, StepReview, StepConfirmation}
}

// SelectDate выбирает день; créneau другого дня сбрасывается
func (w *Wizard) SelectDate(date time.Time) {
	day := domain.DateOnly(date)
	w.draft.SelectedDate = &day

	if w.draft.Slot != nil && !domain.SameDay(w.draft.Slot.Date, day) {
		w.draft.Slot = nil
		w.draft.ScheduledAt = nil
	}
}

// SelectSlot запоминает créneau и вычисляет время записи
func (w *Wizard) SelectSlot(slot *SelectedSlot) error {
	if slot == nil || strings.TrimSpace(slot.ID) == "" {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}
	if w.draft.SelectedDate == nil {
		w.SelectDate(slot.Date)
	}

	date := *w.draft.SelectedDate
	scheduledAt, err := types.TimeString(slot.StartTime).OnDate(date)
	if err != nil {
		return fmt.Errorf("%w: slot start time %q: %v", ErrInvalidInput, slot.StartTime, err)
	}

	selected := *slot
	selected.Date = date
	w.draft.Slot = &selected
	w.draft.ScheduledAt = &scheduledAt
	return nil
}

// SetAddresses задает адреса; при sameAsPickup доставка совпадает с забором
func (w *Wizard) SetAddresses(pickup domain.Address, delivery *domain.Address, sameAsPickup bool) {
	p := pickup
	w.draft.PickupAddress = &p
	w.draft.SameAsPickup = sameAsPickup

	switch {
	case sameAsPickup:
		d := pickup
		w.draft.DeliveryAddress = &d
	case delivery != nil:
		d := *delivery
		w.draft.DeliveryAddress = &d
	default:
		w.draft.DeliveryAddress = nil
	}
}

// SetServices заменяет позиции заказа, пересчитывая суммы
func (w *Wizard) SetServices(lines []domain.ServiceLine) {
	services := make([]domain.ServiceLine, 0, len(lines))
	for _, l := range lines {
		services = append(services, domain.NewServiceLine(l.ServiceID, l.Name, l.Quantity, l.UnitPrice))
	}
	w.draft.Services = services
}

func (w *Wizard) SetNotes(notes string) {
	w.draft.Notes = strings.TrimSpace(notes)
}

// CanProceed заполнен ли текущий шаг
func (w *Wizard) CanProceed() bool {
	switch w.draft.Step {
	case StepDate:
		return w.draft.SelectedDate != nil && w.draft.Slot != nil
	case StepAddress:
		return w.hasPickupStreet()
	case StepReview:
		return true
	default:
		return false
	}
}

// Next переходит к следующему шагу, если текущий заполнен.
// С review вперед переходит только отправка.
func (w *Wizard) Next() error {
	if w.draft.Step == StepReview || w.draft.Step == StepConfirmation {
		return fmt.Errorf("%w: cannot go forward from %s", ErrInvalidStep, w.draft.Step)
	}
	if !w.CanProceed() {
		return fmt.Errorf("%w: step %s", ErrCannotProceed, w.draft.Step)
	}
	return w.move(1)
}

// Back возвращает на предыдущий шаг без проверок
func (w *Wizard) Back() error {
	if w.draft.Step == StepConfirmation || w.draft.Step == StepDate {
		return fmt.Errorf("%w: cannot go back from %s", ErrInvalidStep, w.draft.Step)
	}
	return w.move(-1)
}

func (w *Wizard) move(delta int) error {
	steps := w.Steps()
	for i, s := range steps {
		if s == w.draft.Step {
			w.draft.Step = steps[i+delta]
			return nil
		}
	}
	return fmt.Errorf("%w: unknown step %s", ErrInvalidStep, w.draft.Step)
}

// confirm фиксирует успешную отправку
func (w *Wizard) confirm() {
	w.draft.Step = StepConfirmation
}

// BuildRequest собирает тело POST /appointments
func (w *Wizard) BuildRequest() (pressingapi.CreateAppointmentRequest, error) {
	d := w.draft

	if d.Slot == nil || d.ScheduledAt == nil {
		return pressingapi.CreateAppointmentRequest{}, ErrNoSlot
	}
	if w.opts.RequireAddress && !w.hasPickupStreet() {
		return pressingapi.CreateAppointmentRequest{}, ErrNoPickupAddress
	}
	if len(d.Services) == 0 {
		return pressingapi.CreateAppointmentRequest{}, ErrNoServices
	}

	services := make([]domain.ServiceLine, len(d.Services))
	copy(services, d.Services)

	req := pressingapi.CreateAppointmentRequest{
		PressingID:      d.PressingID,
		TimeSlotID:      d.Slot.ID,
		AppointmentDate: *d.ScheduledAt,
		Services:        services,
		TotalAmount:     domain.SumServiceLines(services),
	}
	if w.hasPickupStreet() {
		pickup := *d.PickupAddress
		req.PickupAddress = &pickup
	}
	if d.DeliveryAddress != nil && strings.TrimSpace(d.DeliveryAddress.Street) != "" {
		delivery := *d.DeliveryAddress
		req.DeliveryAddress = &delivery
	}
	if d.Notes != "" {
		notes := d.Notes
		req.Notes = &notes
	}

	return req, nil
}

func (w *Wizard) hasPickupStreet() bool {
	return w.draft.PickupAddress != nil && strings.TrimSpace(w.draft.PickupAddress.Street) != ""
}
