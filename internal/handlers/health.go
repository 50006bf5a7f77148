package handlers

import "net/http"

// HealthStatus reports readiness of the retrieval core.
type HealthStatus struct {
	Status    string `json:"status"`
	Chunks    int    `json:"chunks"`
	Incidents int    `json:"incidents"`
}

// HealthHandler handles HTTP health checks.
type HealthHandler struct {
	status func() HealthStatus
}

// NewHealthHandler creates a new HealthHandler. The status func is called
// per request so counts reflect the live index.
func NewHealthHandler(status func() HealthStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

// ServeHTTP handles HTTP health checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.status())
}
