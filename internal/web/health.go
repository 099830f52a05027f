package web

import (
	"encoding/json"
	"net/http"
	"time"
)

var startTime = time.Now()

const version = "0.1.0"

// HealthHandler serves the /healthz endpoint.
type HealthHandler struct {
	siteCount int
}

func NewHealthHandler(siteCount int) *HealthHandler {
	return &HealthHandler{siteCount: siteCount}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":         "ok",
		"version":        version,
		"uptime_seconds": int(time.Since(startTime).Seconds()),
		"site_count":     h.siteCount,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
