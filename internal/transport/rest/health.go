package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const healthPingTimeout = 3 * time.Second

// dbPinger is the part of *pgxpool.Pool the health probes need.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and full health probes.
type HealthHandler struct {
	db      dbPinger
	version string
}

func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]componentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type componentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200: the process is up and serving.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when the database responds to a ping, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.pingDatabase(r.Context())

	status, code := "ok", http.StatusOK
	if !ok {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeJSON(w, code, healthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports the build version and per-component status with ping
// latency. Any component being down turns the overall status to 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db, ok := h.pingDatabase(r.Context())

	status, code := "ok", http.StatusOK
	if !ok {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, healthResponse{
		Status:     status,
		Version:    h.version,
		Components: map[string]componentStatus{"database": db},
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) pingDatabase(ctx context.Context) (componentStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return componentStatus{Status: "down"}, false
	}
	return componentStatus{Status: "ok", Latency: time.Since(start).String()}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
