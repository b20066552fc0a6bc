package outbox

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Probe is the view of the relay the health endpoints need.
type Probe interface {
	IsHealthy() bool
	IsReady() bool
}

type healthStatus struct {
	Status    string `json:"status"`
	Component string `json:"component"`
}

// HealthRouter mounts /health (liveness) and /health/ready on r.
func HealthRouter(r chi.Router, p Probe) chi.Router {
	r.Get("/health", probeHandler(p.IsHealthy))
	r.Get("/health/live", probeHandler(p.IsHealthy))
	r.Get("/health/ready", probeHandler(p.IsReady))
	return r
}

func probeHandler(check func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		status := "UP"
		httpStatus := http.StatusOK
		if !check() {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		_ = json.NewEncoder(w).Encode(healthStatus{Status: status, Component: "outbox-relay"})
	}
}
