package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"playlist-manager/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"

	probeTimeout = 2 * time.Second
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Error   string `json:"error,omitempty"`

	// Live state
	Clients   int `json:"clients"`
	Playlists int `json:"playlists"`
	Tracks    int `json:"tracks"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// check reports the first problem with the store or the application loop.
func (h *Handlers) check(ctx context.Context) error {
	if err := h.db.Ping(ctx); err != nil {
		return err
	}
	_, err := h.app.Playlists(ctx)
	return err
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	response := HealthResponse{
		Status:       statusHealthy,
		Ready:        true,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Clients:      h.hub.Clients(),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	if err := h.db.Ping(ctx); err != nil {
		response.Status = statusDegraded
		response.Ready = false
		response.Error = err.Error()
	} else if all, err := h.app.Playlists(ctx); err != nil {
		response.Status = statusDegraded
		response.Ready = false
		response.Error = err.Error()
	} else {
		response.Playlists = len(all)
		for _, pl := range all {
			response.Tracks += len(pl.Tracks)
		}
	}

	statusCode := http.StatusOK
	if !response.Ready {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSONStatusCode(w, response, statusCode)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when the store answers and the
// application loop is running.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	if err := h.check(ctx); err != nil {
		writeJSONStatusCode(w, map[string]string{"status": "not_ready", "error": err.Error()}, http.StatusServiceUnavailable)
		return
	}
	writeJSONStatus(w, "ready")
}
