package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/internal/service/appointments/models"
	"github.com/geopressci/pressing-gateway/pkg/logger"
	"github.com/geopressci/pressing-gateway/pkg/ptr"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) ListAppointments(ctx context.Context, filter pressingapi.AppointmentFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.Appointment)
	return list, args.Error(1)
}

func (m *mockClient) ConfirmAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	appt, _ := args.Get(0).(*domain.Appointment)
	return appt, args.Error(1)
}

func (m *mockClient) CancelAppointment(ctx context.Context, id, reason string) (*domain.Appointment, error) {
	args := m.Called(ctx, id, reason)
	appt, _ := args.Get(0).(*domain.Appointment)
	return appt, args.Error(1)
}

func (m *mockClient) RescheduleAppointment(ctx context.Context, id string, req pressingapi.RescheduleRequest) (*domain.Appointment, error) {
	args := m.Called(ctx, id, req)
	appt, _ := args.Get(0).(*domain.Appointment)
	return appt, args.Error(1)
}

func (m *mockClient) CompleteAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	appt, _ := args.Get(0).(*domain.Appointment)
	return appt, args.Error(1)
}

func (m *mockClient) AppointmentStats(ctx context.Context) (*domain.AppointmentStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*domain.AppointmentStats)
	return stats, args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func newService(client AppointmentsClient) *Service {
	svc := NewService(client, logger.Discard())
	svc.timeProvider = fixedTime{now: now}
	return svc
}

func appointments() []*domain.Appointment {
	return []*domain.Appointment{
		{ID: "a-soon", Status: domain.StatusConfirmed, AppointmentDate: now.Add(time.Hour)},
		{ID: "a-later", Status: domain.StatusPending, AppointmentDate: now.Add(50 * time.Hour)},
		{ID: "a-progress", Status: domain.StatusInProgress, AppointmentDate: now.Add(5 * time.Hour)},
	}
}

func TestService_ListComputesViewFields(t *testing.T) {
	client := &mockClient{}
	status := domain.StatusPending
	client.On("ListAppointments", mock.Anything, pressingapi.AppointmentFilter{Status: &status}).
		Return(appointments(), nil)

	resp, err := newService(client).List(context.Background(), &models.ListRequest{Status: ptr.Ptr("pending")})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 3)

	soon := resp.Appointments[0]
	assert.Equal(t, "Confirmé", soon.StatusLabel)
	assert.Equal(t, "dans 1 h", soon.TimeUntil)
	assert.False(t, soon.CanCancel)
	assert.False(t, soon.CanReschedule)
	assert.NotNil(t, soon.Services)

	later := resp.Appointments[1]
	assert.Equal(t, "En attente", later.StatusLabel)
	assert.Equal(t, "dans 2 jours", later.TimeUntil)
	assert.True(t, later.CanCancel)
	assert.True(t, later.CanReschedule)

	progress := resp.Appointments[2]
	assert.True(t, progress.CanCancel)
	assert.False(t, progress.CanReschedule)
}

func TestService_ListInvalidStatus(t *testing.T) {
	_, err := newService(&mockClient{}).List(context.Background(), &models.ListRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CancelGate(t *testing.T) {
	client := &mockClient{}
	client.On("ListAppointments", mock.Anything, pressingapi.AppointmentFilter{}).Return(appointments(), nil)
	client.On("CancelAppointment", mock.Anything, "a-later", "Empêchement").
		Return(&domain.Appointment{ID: "a-later", Status: domain.StatusCancelled, AppointmentDate: now.Add(50 * time.Hour)}, nil)

	svc := newService(client)

	_, err := svc.Cancel(context.Background(), "a-soon", &models.CancelRequest{Reason: "trop tard"})
	assert.ErrorIs(t, err, ErrCannotCancel)
	client.AssertNotCalled(t, "CancelAppointment", mock.Anything, "a-soon", mock.Anything)

	resp, err := svc.Cancel(context.Background(), "a-later", &models.CancelRequest{Reason: " Empêchement "})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "Annulé", resp.StatusLabel)
	assert.False(t, resp.CanCancel)

	_, err = svc.Cancel(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_RescheduleGate(t *testing.T) {
	client := &mockClient{}
	client.On("ListAppointments", mock.Anything, pressingapi.AppointmentFilter{}).Return(appointments(), nil)

	newDate := now.Add(72 * time.Hour)
	client.On("RescheduleAppointment", mock.Anything, "a-later", pressingapi.RescheduleRequest{
		NewTimeSlotID: "slot-9",
		NewDate:       newDate,
	}).Return(&domain.Appointment{ID: "a-later", Status: domain.StatusPending, AppointmentDate: newDate}, nil)

	svc := newService(client)
	req := &models.RescheduleRequest{NewTimeSlotID: "slot-9", NewDate: newDate}

	_, err := svc.Reschedule(context.Background(), "a-progress", req)
	assert.ErrorIs(t, err, ErrCannotReschedule)

	_, err = svc.Reschedule(context.Background(), "a-soon", req)
	assert.ErrorIs(t, err, ErrCannotReschedule)

	resp, err := svc.Reschedule(context.Background(), "a-later", req)
	require.NoError(t, err)
	assert.Equal(t, newDate, resp.AppointmentDate)

	_, err = svc.Reschedule(context.Background(), "a-later", &models.RescheduleRequest{NewTimeSlotID: "slot-9", NewDate: now.Add(-time.Hour)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Reschedule(context.Background(), "a-later", &models.RescheduleRequest{NewDate: newDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpstreamErrors(t *testing.T) {
	client := &mockClient{}
	client.On("ConfirmAppointment", mock.Anything, "a1").Return(nil, &pressingapi.APIError{StatusCode: 404})
	client.On("CompleteAppointment", mock.Anything, "a1").Return(nil, &pressingapi.APIError{StatusCode: 403, Message: "Accès refusé"})
	client.On("AppointmentStats", mock.Anything).Return(nil, pressingapi.ErrSessionExpired)

	svc := newService(client)

	_, err := svc.Confirm(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.Complete(context.Background(), "a1")
	assert.ErrorIs(t, err, pressingapi.ErrForbidden)
	assert.Equal(t, "Accès refusé", pressingapi.UserMessage(err, ""))

	_, err = svc.Stats(context.Background())
	assert.ErrorIs(t, err, pressingapi.ErrSessionExpired)
	assert.ErrorIs(t, err, pressingapi.ErrUnauthorized)
}

func TestService_Stats(t *testing.T) {
	client := &mockClient{}
	stats := &domain.AppointmentStats{Total: 4, Upcoming: 2}
	client.On("AppointmentStats", mock.Anything).Return(stats, nil)

	got, err := newService(client).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}
