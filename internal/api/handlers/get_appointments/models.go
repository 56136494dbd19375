package get_appointments

import (
	"net/http"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
	"github.com/geopressci/pressing-gateway/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(r *http.Request) (*models.ListRequest, error) {
	req := &models.ListRequest{
		PressingID: r.URL.Query().Get("pressingId"),
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}
	if !from.IsZero() {
		req.From = &from
	}

	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}
	if !to.IsZero() {
		req.To = &to
	}

	return req, nil
}
