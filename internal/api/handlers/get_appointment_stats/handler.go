package get_appointment_stats

import (
	"net/http"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
)

const msgStatsFailed = "Impossible de charger les statistiques."

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("GET /appointments/stats - Failed to get stats: %v", err)
		handlers.RespondUpstreamError(w, err, msgStatsFailed)
		return
	}

	h.logger.Info("GET /appointments/stats - Stats retrieved successfully: total=%d", stats.Total)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
