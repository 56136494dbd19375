package health

import (
	"context"
	"net/http"
	"time"

	"github.com/geopressci/pressing-gateway/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

type Handler struct {
	checkers []Checker
	logger   Logger
}

func NewHandler(logger Logger, checkers ...Checker) *Handler {
	return &Handler{
		checkers: checkers,
		logger:   logger,
	}
}

// Handle GET /health
// 503, если хотя бы одна зависимость недоступна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := HealthResponse{Status: StatusOK, Checks: make(map[string]string, len(h.checkers))}
	for _, c := range h.checkers {
		if err := c.Check(ctx); err != nil {
			h.logger.Warn("GET /health - Check failed: name=%s, error=%v", c.Name(), err)
			resp.Status = StatusDegraded
			resp.Checks[c.Name()] = err.Error()
			continue
		}
		resp.Checks[c.Name()] = StatusOK
	}

	status := http.StatusOK
	if resp.Status != StatusOK {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}

// CheckFunc адаптер функции к Checker
type CheckFunc struct {
	CheckName string
	Fn        func(ctx context.Context) error
}

func (c CheckFunc) Name() string {
	return c.CheckName
}

func (c CheckFunc) Check(ctx context.Context) error {
	return c.Fn(ctx)
}
