package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/internal/service/appointments/models"
)

// Service записи клиента. Правила отмены и переноса проверяются
// до обращения к API маркетплейса.
type Service struct {
	client       AppointmentsClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(client AppointmentsClient, logger Logger) *Service {
	return &Service{
		client:       client,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// List записи текущего пользователя
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToFilter()
	if err != nil {
		s.logger.Warn("List: invalid status=%v", req.Status)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.client.ListAppointments(ctx, filter)
	if err != nil {
		s.logger.Error("List: upstream error: %v", err)
		return nil, mapUpstream("list appointments", err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return models.FromDomainAppointments(list, s.timeProvider.Now()), nil
}

// Get запись по ID
func (s *Service) Get(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment, s.timeProvider.Now()), nil
}

// Cancel отменяет запись, если до нее больше двух часов
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment id=%s", id)

	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if !appointment.CanBeCancelled(now) {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled (status=%s, date=%s)",
			id, appointment.Status, appointment.AppointmentDate.Format("2006-01-02 15:04"))
		return nil, ErrCannotCancel
	}

	reason := ""
	if req != nil {
		reason = strings.TrimSpace(req.Reason)
	}

	updated, err := s.client.CancelAppointment(ctx, id, reason)
	if err != nil {
		s.logger.Error("Cancel: upstream error for appointment id=%s: %v", id, err)
		return nil, mapUpstream("cancel appointment", err)
	}

	s.logger.Info("Cancel: appointment id=%s cancelled", id)
	return models.FromDomainAppointment(updated, now), nil
}

// Reschedule переносит запись на другой créneau
func (s *Service) Reschedule(ctx context.Context, id string, req *models.RescheduleRequest) (*models.AppointmentResponse, error) {
	if req == nil || strings.TrimSpace(req.NewTimeSlotID) == "" || req.NewDate.IsZero() {
		return nil, fmt.Errorf("%w: newTimeSlotId and newDate are required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	if !req.NewDate.After(now) {
		return nil, fmt.Errorf("%w: newDate must be in the future", ErrInvalidInput)
	}

	s.logger.Info("Reschedule: appointment id=%s to slot=%s", id, req.NewTimeSlotID)

	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appointment.CanBeRescheduled(now) {
		s.logger.Warn("Reschedule: appointment id=%s cannot be rescheduled (status=%s)", id, appointment.Status)
		return nil, ErrCannotReschedule
	}

	updated, err := s.client.RescheduleAppointment(ctx, id, pressingapi.RescheduleRequest{
		NewTimeSlotID: req.NewTimeSlotID,
		NewDate:       req.NewDate,
		Reason:        strings.TrimSpace(req.Reason),
	})
	if err != nil {
		s.logger.Error("Reschedule: upstream error for appointment id=%s: %v", id, err)
		return nil, mapUpstream("reschedule appointment", err)
	}

	return models.FromDomainAppointment(updated, now), nil
}

// Confirm подтверждает запись
func (s *Service) Confirm(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	updated, err := s.client.ConfirmAppointment(ctx, id)
	if err != nil {
		s.logger.Error("Confirm: upstream error for appointment id=%s: %v", id, err)
		return nil, mapUpstream("confirm appointment", err)
	}
	return models.FromDomainAppointment(updated, s.timeProvider.Now()), nil
}

// Complete завершает запись
func (s *Service) Complete(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	updated, err := s.client.CompleteAppointment(ctx, id)
	if err != nil {
		s.logger.Error("Complete: upstream error for appointment id=%s: %v", id, err)
		return nil, mapUpstream("complete appointment", err)
	}
	return models.FromDomainAppointment(updated, s.timeProvider.Now()), nil
}

// Stats агрегаты по записям
func (s *Service) Stats(ctx context.Context) (*domain.AppointmentStats, error) {
	stats, err := s.client.AppointmentStats(ctx)
	if err != nil {
		s.logger.Error("Stats: upstream error: %v", err)
		return nil, mapUpstream("appointment stats", err)
	}
	return stats, nil
}

// find ищет запись в списке GET /appointments
func (s *Service) find(ctx context.Context, id string) (*domain.Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	list, err := s.client.ListAppointments(ctx, pressingapi.AppointmentFilter{})
	if err != nil {
		s.logger.Error("find: upstream error for appointment id=%s: %v", id, err)
		return nil, mapUpstream("load appointment", err)
	}

	for _, a := range list {
		if a != nil && a.ID == id {
			return a, nil
		}
	}

	s.logger.Warn("find: appointment id=%s not found", id)
	return nil, ErrAppointmentNotFound
}

// mapUpstream 404 становится ErrAppointmentNotFound, остальное оборачивается как есть
func mapUpstream(op string, err error) error {
	if errors.Is(err, pressingapi.ErrNotFound) {
		return fmt.Errorf("%w: %s: %v", ErrAppointmentNotFound, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
