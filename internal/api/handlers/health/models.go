package health

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// HealthResponse HTTP response model
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
