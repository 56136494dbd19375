package booking

import (
	"context"
	"sync"

	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
)

// Результаты отправки для метрик
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Submitter отправляет черновик в API маркетплейса.
// Одновременно выполняется не более одной отправки черновика.
type Submitter struct {
	repo       *DraftRepository
	client     AppointmentCreator
	opts       Options
	onComplete CompletionFunc
	metrics    MetricsRecorder
	logger     Logger

	mu sync.Mutex
}

// NewSubmitter создает Submitter; onComplete и metrics могут быть nil
func NewSubmitter(repo *DraftRepository, client AppointmentCreator, opts Options, onComplete CompletionFunc, metrics MetricsRecorder, logger Logger) *Submitter {
	return &Submitter{
		repo:       repo,
		client:     client,
		opts:       opts,
		onComplete: onComplete,
		metrics:    metrics,
		logger:     logger,
	}
}

// Submit создает запись по черновику. Повторных попыток нет:
// при ошибке черновик остается на шаге review.
func (s *Submitter) Submit(ctx context.Context, owner, draftID string) (*Draft, error) {
	draft, req, err := s.begin(ctx, owner, draftID)
	if err != nil {
		return nil, err
	}

	appointment, err := s.client.CreateAppointment(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	// снимаем отметку после сохранения результата
	defer s.repo.release(owner, draftID)

	draft.Submitting = false
	if err != nil {
		message := pressingapi.UserMessage(err, "")
		draft.LastError = message
		s.save(context.WithoutCancel(ctx), owner, draft)
		s.record(OutcomeFailure)

		s.logger.Warn("Booking.Submit: owner=%s, draft=%s failed: %v", owner, draftID, err)
		return draft, &SubmitError{Message: message, cause: err}
	}

	NewWizard(draft, s.opts).confirm()
	draft.AppointmentID = appointment.ID
	draft.LastError = ""
	s.save(context.WithoutCancel(ctx), owner, draft)
	s.record(OutcomeSuccess)

	s.logger.Info("Booking.Submit: owner=%s, draft=%s, appointment=%s", owner, draftID, appointment.ID)
	if s.onComplete != nil {
		s.onComplete(ctx, owner, appointment)
	}
	return draft, nil
}

// begin проверяет черновик и помечает его отправляемым (только в памяти)
func (s *Submitter) begin(ctx context.Context, owner, draftID string) (*Draft, pressingapi.CreateAppointmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var empty pressingapi.CreateAppointmentRequest

	draft, err := s.repo.Get(ctx, owner, draftID)
	if err != nil {
		return nil, empty, err
	}
	if draft.Step == StepConfirmation {
		return nil, empty, ErrAlreadySubmitted
	}
	if draft.Step != StepReview {
		return nil, empty, ErrCannotProceed
	}

	req, err := NewWizard(draft, s.opts).BuildRequest()
	if err != nil {
		return nil, empty, err
	}

	if !s.repo.acquire(owner, draftID) {
		s.record(OutcomeRejected)
		return nil, empty, ErrSubmissionInFlight
	}
	draft.Submitting = true

	return draft, req, nil
}

func (s *Submitter) save(ctx context.Context, owner string, draft *Draft) {
	if err := s.repo.Save(ctx, owner, draft); err != nil {
		s.logger.Error("Booking.Submit: failed to persist draft=%s: %v", draft.ID, err)
	}
}

func (s *Submitter) record(outcome string) {
	if s.metrics != nil {
		s.metrics.IncBookingSubmission(outcome)
	}
}
