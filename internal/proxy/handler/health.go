package handler

import (
	"encoding/json"
	"net/http"
)

type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
}

// Health godoc
// @Summary Liveness check
// @Description Reports that the proxy process is up. Never probes the upstream provider.
// @Tags Proxy
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{OK: true})
}
