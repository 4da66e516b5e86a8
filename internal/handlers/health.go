package handlers

import (
	"net/http"
	"runtime"

	"music-vault/internal/startup"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. The backend has
// no background machinery; if it can answer, it is healthy.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, HealthResponse{
		Status:       "healthy",
		Version:      startup.Version,
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
	})
}

// LivenessCheck is a minimal liveness probe.
func (h *Handlers) LivenessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSONStatus(w, "alive")
}

// ReadinessCheck reports whether the service can take traffic.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSONStatus(w, "ready")
}

// GetVersion returns build information.
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, startup.GetBuildInfo())
}
