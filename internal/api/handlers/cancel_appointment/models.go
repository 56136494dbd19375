package cancel_appointment

import (
	"github.com/geopressci/pressing-gateway/internal/service/appointments/models"
	"github.com/geopressci/pressing-gateway/pkg/ptr"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest() *models.CancelRequest {
	return &models.CancelRequest{
		Reason: ptr.Value(r.Reason),
	}
}
