package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service операции над черновиками мастера записи
type Service struct {
	repo         *DraftRepository
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

func NewService(repo *DraftRepository, opts Options, logger Logger) *Service {
	return &Service{
		repo:         repo,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Options настройки мастера
func (s *Service) Options() Options {
	return s.opts
}

// Create создает черновик на шаге выбора даты
func (s *Service) Create(ctx context.Context, owner string, input CreateDraftInput) (*Draft, error) {
	if strings.TrimSpace(input.PressingID) == "" {
		return nil, fmt.Errorf("%w: pressingId is required", ErrInvalidInput)
	}
	for _, l := range input.Services {
		if strings.TrimSpace(l.ServiceID) == "" || l.Quantity <= 0 || l.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: invalid service line %q", ErrInvalidInput, l.ServiceID)
		}
	}

	now := s.timeProvider.Now()
	draft := &Draft{
		ID:         uuid.NewString(),
		PressingID: input.PressingID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	w := NewWizard(draft, s.opts)
	w.SetServices(input.Services)
	w.SetNotes(input.Notes)

	if err := s.repo.Save(ctx, owner, draft); err != nil {
		s.logger.Error("Booking.Create: owner=%s: %v", owner, err)
		return nil, err
	}

	s.logger.Info("Booking.Create: owner=%s, draft=%s, pressing=%s", owner, draft.ID, draft.PressingID)
	return draft, nil
}

// Get возвращает черновик
func (s *Service) Get(ctx context.Context, owner, id string) (*Draft, error) {
	return s.repo.Get(ctx, owner, id)
}

// SelectSlot выбирает дату и créneau
func (s *Service) SelectSlot(ctx context.Context, owner, id string, input SelectSlotInput) (*Draft, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return s.update(ctx, owner, id, func(w *Wizard) error {
		w.SelectDate(input.Date)
		if input.Slot == nil {
			return nil
		}
		return w.SelectSlot(input.Slot)
	})
}

// SetAddress задает адреса забора и доставки
func (s *Service) SetAddress(ctx context.Context, owner, id string, input AddressInput) (*Draft, error) {
	return s.update(ctx, owner, id, func(w *Wizard) error {
		w.SetAddresses(input.Pickup, input.Delivery, input.SameAsPickup)
		return nil
	})
}

// Move переходит на следующий или предыдущий шаг
func (s *Service) Move(ctx context.Context, owner, id string, direction Direction) (*Draft, error) {
	return s.update(ctx, owner, id, func(w *Wizard) error {
		switch direction {
		case DirectionNext:
			return w.Next()
		case DirectionBack:
			return w.Back()
		default:
			return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, direction)
		}
	})
}

// Delete удаляет черновик
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.repo.Get(ctx, owner, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, owner, id)
}

func (s *Service) update(ctx context.Context, owner, id string, apply func(w *Wizard) error) (*Draft, error) {
	draft, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if draft.Submitting {
		return nil, ErrSubmissionInFlight
	}
	if draft.Step == StepConfirmation {
		return nil, ErrAlreadySubmitted
	}

	if err := apply(NewWizard(draft, s.opts)); err != nil {
		s.logger.Warn("Booking.update: owner=%s, draft=%s: %v", owner, id, err)
		return nil, err
	}

	draft.UpdatedAt = s.timeProvider.Now()
	if err := s.repo.Save(ctx, owner, draft); err != nil {
		s.logger.Error("Booking.update: owner=%s, draft=%s: %v", owner, id, err)
		return nil, err
	}
	return draft, nil
}
