package pressingapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/domain"
	"github.com/geopressci/pressing-gateway/pkg/logger"
)

type recordingSessions struct {
	calls int
}

func (r *recordingSessions) OnUnauthorized(ctx context.Context) {
	r.calls++
}

type counter struct {
	n int
}

func (c *counter) IncUpstreamUnauthorized() {
	c.n++
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingSessions, *counter) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessions := &recordingSessions{}
	unauthorized := &counter{}
	client := NewClient(srv.URL+"/api/v1/", 5*time.Second, sessions, logger.Discard(), WithMetrics(unauthorized))
	return client, sessions, unauthorized
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true,"data":{"total":3,"upcoming":1,"totalRevenue":4500,"averageAmount":1500}}`))
	})

	ctx := WithToken(context.Background(), "jwt-123")
	stats, err := client.AppointmentStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Bearer jwt-123", gotAuth)
	assert.Equal(t, "/api/v1/appointments/stats", gotPath)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 4500.0, stats.TotalRevenue)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := client.ListPressings(context.Background(), NearbyQuery{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_UnauthorizedOnProtectedPathClearsSession(t *testing.T) {
	client, sessions, unauthorized := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expiré"}`))
	})

	_, err := client.ListAppointments(context.Background(), AppointmentFilter{})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, sessions.calls)
	assert.Equal(t, 1, unauthorized.n)
	assert.Equal(t, "Token expiré", UserMessage(err, ""))
}

func TestClient_UnauthorizedOnPublicPathKeepsSession(t *testing.T) {
	client, sessions, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetAvailableSlots(context.Background(), "p1", time.Now())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, 0, sessions.calls)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status   int
		body     string
		expected error
		message  string
	}{
		{http.StatusNotFound, `{"message":"Rendez-vous introuvable"}`, ErrNotFound, "Rendez-vous introuvable"},
		{http.StatusConflict, `{"error":"Créneau complet"}`, ErrConflict, "Créneau complet"},
		{http.StatusBadRequest, `{}`, ErrBadRequest, GenericErrorMessage},
		{http.StatusUnprocessableEntity, `not json`, ErrBadRequest, GenericErrorMessage},
		{http.StatusForbidden, `{"message":"Accès refusé"}`, ErrForbidden, "Accès refusé"},
		{http.StatusBadGateway, ``, ErrUpstream, GenericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.CompleteAppointment(context.Background(), "a1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, tt.message, UserMessage(err, ""))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "/appointments/a1/complete", apiErr.Path)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(srv.URL, time.Second, nil, logger.Discard())
	_, err := client.GetAvailableSlots(context.Background(), "p1", time.Now())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, "fallback", UserMessage(err, "fallback"))
}

func TestClient_CreateAppointment(t *testing.T) {
	var body map[string]interface{}
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/appointments", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"success": true,
			"data": {
				"_id": "apt-1",
				"client": {"_id": "u-1", "name": "Awa"},
				"pressing": {"_id": "p-1", "nom": "Pressing Cocody"},
				"timeSlot": "slot-1",
				"services": [{"service": {"_id": "s-1", "nom": "Chemise"}, "quantity": 3, "unitPrice": 500, "totalPrice": 1500}],
				"status": "pending",
				"appointmentDate": "2025-03-12T09:00:00.000Z",
				"totalAmount": 1500,
				"pickupAddress": {"street": "Rue des Jardins", "city": "Abidjan"},
				"createdAt": "2025-03-10T08:00:00Z"
			}
		}`))
	})

	date := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	apt, err := client.CreateAppointment(context.Background(), CreateAppointmentRequest{
		PressingID:      "p-1",
		TimeSlotID:      "slot-1",
		AppointmentDate: date,
		Services:        []domain.ServiceLine{domain.NewServiceLine("s-1", "Chemise", 3, 500)},
		PickupAddress:   &domain.Address{Street: "Rue des Jardins", City: "Abidjan"},
		TotalAmount:     1500,
	})
	require.NoError(t, err)

	assert.Equal(t, "p-1", body["pressing"])
	assert.Equal(t, "slot-1", body["timeSlot"])
	assert.Len(t, body["services"], 1)

	assert.Equal(t, "apt-1", apt.ID)
	assert.Equal(t, "u-1", apt.ClientID)
	assert.Equal(t, "Pressing Cocody", apt.PressingName)
	assert.Equal(t, "slot-1", apt.TimeSlotID)
	assert.Equal(t, domain.StatusPending, apt.Status)
	assert.True(t, date.Equal(apt.AppointmentDate))
	require.Len(t, apt.Services, 1)
	assert.Equal(t, "Chemise", apt.Services[0].Name)
	assert.Equal(t, 1500.0, apt.ComputeTotal())
	require.NotNil(t, apt.PickupAddress)
	assert.Equal(t, "Rue des Jardins", apt.PickupAddress.Street)
}

func TestClient_ListAppointmentsQuery(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "confirmed", r.URL.Query().Get("status"))
		assert.Equal(t, "2025-03-01", r.URL.Query().Get("startDate"))
		w.Write([]byte(`{"data":{"appointments":[
			{"_id":"a1","status":"confirmed","appointmentDate":"2025-03-12T09:00:00Z"},
			{"_id":"bad","status":"confirmed","appointmentDate":""}
		]}}`))
	})

	status := domain.StatusConfirmed
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	list, err := client.ListAppointments(context.Background(), AppointmentFilter{Status: &status, From: &from})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].ID)
}

func TestClient_GetAvailableSlots(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pressings/p-1/available-slots", r.URL.Path)
		assert.Equal(t, "2025-03-12", r.URL.Query().Get("date"))
		w.Write([]byte(`{"success":true,"data":{"slots":[
			{"_id":"s1","pressing":"p-1","date":"2025-03-12T00:00:00.000Z","startTime":"09:00","endTime":"10:00",
			 "maxCapacity":4,"currentBookings":1,"availableSpots":3,"status":"available","slotType":"regular","isBlocked":false},
			{"_id":"s2","date":"2025-03-12","startTime":"10:00:00","maxCapacity":2,"currentBookings":2}
		]}}`))
	})

	slots, err := client.GetAvailableSlots(context.Background(), "p-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, "s1", slots[0].ID)
	assert.Equal(t, 3, slots[0].AvailableSpots)
	assert.Equal(t, "10:00", slots[0].EndTime.String())
	assert.Equal(t, "10:00", slots[1].StartTime.String())
	assert.Equal(t, 0, slots[1].AvailableSpots)
	assert.Equal(t, domain.SlotAvailable, slots[1].Status)
	assert.Equal(t, domain.SlotRegular, slots[1].SlotType)
}

func TestClient_TimeSlotOperations(t *testing.T) {
	var calls []string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/v1/pressings/p-1/bulk-time-slots":
			w.Write([]byte(`{"data":{"created":12,"skipped":2}}`))
		case "/api/v1/time-slots/s1":
			if r.Method == http.MethodDelete {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			fallthrough
		default:
			w.Write([]byte(`{"data":{"_id":"s1","date":"2025-03-12","startTime":"09:00","endTime":"10:00","maxCapacity":4,"isBlocked":true,"status":"blocked"}}`))
		}
	})
	ctx := context.Background()

	slot, err := client.CreateTimeSlot(ctx, "p-1", TimeSlotInput{Date: "2025-03-12", StartTime: "09:00", EndTime: "10:00", MaxCapacity: 4})
	require.NoError(t, err)
	assert.Equal(t, "s1", slot.ID)

	_, err = client.UpdateTimeSlot(ctx, "s1", TimeSlotInput{MaxCapacity: 6})
	require.NoError(t, err)

	slot, err = client.ToggleBlockTimeSlot(ctx, "s1", "maintenance")
	require.NoError(t, err)
	assert.True(t, slot.IsBlocked)

	require.NoError(t, client.DeleteTimeSlot(ctx, "s1"))

	result, err := client.CreateBulkTimeSlots(ctx, "p-1", BulkTimeSlotsInput{StartDate: "2025-03-10", EndDate: "2025-03-14"})
	require.NoError(t, err)
	assert.Equal(t, 12, result.Created)
	assert.Equal(t, 2, result.Skipped)

	assert.Equal(t, []string{
		"POST /api/v1/pressings/p-1/time-slots",
		"PUT /api/v1/time-slots/s1",
		"PATCH /api/v1/time-slots/s1/toggle-block",
		"DELETE /api/v1/time-slots/s1",
		"POST /api/v1/pressings/p-1/bulk-time-slots",
	}, calls)
}

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		expected bool
	}{
		{http.MethodPost, "/auth/login", true},
		{http.MethodPost, "/auth/register", true},
		{http.MethodPost, "/auth/refresh", true},
		{http.MethodPost, "/auth/logout", false},
		{http.MethodGet, "/pressings", true},
		{http.MethodGet, "/pressings?lat=5.3", true},
		{http.MethodGet, "/pressings/p1", true},
		{http.MethodPut, "/pressings/p1", false},
		{http.MethodGet, "/pressings/p1/available-slots", true},
		{http.MethodGet, "/pressings/p1/slot-stats", false},
		{http.MethodPost, "/pressings/p1/time-slots", false},
		{http.MethodGet, "/appointments", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPublicEndpoint(tt.method, tt.path))
		})
	}
}
