package cancel_appointment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/geopressci/pressing-gateway/internal/integrations/pressingapi"
	"github.com/geopressci/pressing-gateway/internal/service/appointments"
	"github.com/geopressci/pressing-gateway/internal/service/appointments/models"
	"github.com/geopressci/pressing-gateway/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Cancel(ctx context.Context, id string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	args := m.Called(id, req)
	resp, _ := args.Get(0).(*models.AppointmentResponse)
	return resp, args.Error(1)
}

func serve(svc *mockService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/appointments/{appointmentId}/cancel", NewHandler(svc, logger.Discard()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/appointments/a1/cancel", strings.NewReader(body)))
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", "a1", &models.CancelRequest{Reason: "Empêchement"}).
		Return(&models.AppointmentResponse{ID: "a1", Status: "cancelled", StatusLabel: "Annulé"}, nil).Once()

	rec := serve(svc, `{"reason":"Empêchement"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"statusLabel":"Annulé"`)
	svc.AssertExpectations(t)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &mockService{}
	svc.On("Cancel", "a1", &models.CancelRequest{}).
		Return(&models.AppointmentResponse{ID: "a1"}, nil).Once()

	assert.Equal(t, http.StatusOK, serve(svc, "").Code)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"window closed", appointments.ErrCannotCancel, http.StatusBadRequest},
		{"session expired", fmt.Errorf("cancel appointment: %w", pressingapi.ErrSessionExpired), http.StatusUnauthorized},
		{"upstream down", fmt.Errorf("cancel appointment: %w", pressingapi.ErrUpstream), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", "a1", mock.Anything).Return(nil, tt.err).Once()

			assert.Equal(t, tt.status, serve(svc, `{}`).Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, serve(&mockService{}, `{"reason":`).Code)
}
